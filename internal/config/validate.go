package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		return name
	})
	_ = v.RegisterValidation("abspath", func(fl validator.FieldLevel) bool {
		return filepath.IsAbs(fl.Field().String())
	})
	return v
}

// Validate ensures every configured path is set and absolute.
func (c *Config) Validate(source string) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf(messages.ConfigValidationFmt, source, err.Error())
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf(messages.ConfigFieldRequiredFmt, fe.Field()))
		case "abspath":
			problems = append(problems, fmt.Sprintf(messages.ConfigFieldAbsoluteFmt, fe.Field()))
		default:
			problems = append(problems, fmt.Sprintf(messages.ConfigFieldInvalidFmt, fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf(messages.ConfigValidationFmt, source, strings.Join(problems, "; "))
}
