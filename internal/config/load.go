package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

// ErrConfigValidation wraps failures of a syntactically valid config, as
// opposed to filesystem or TOML syntax errors.
var ErrConfigValidation = errors.New("config validation failed")

// Config holds the paths the reboot check works with.
type Config struct {
	// BootedSystem is the root of the currently running system.
	BootedSystem string `toml:"booted_system" validate:"required,abspath"`
	// StagedSystem is the root of the system that becomes active on next boot.
	StagedSystem string `toml:"staged_system" validate:"required,abspath"`
	// Sentinel is written when a reboot is needed.
	Sentinel string `toml:"sentinel" validate:"required,abspath"`
	// Prefix is prepended to every path that is read, for inspecting a system
	// mounted somewhere other than /.
	Prefix string `toml:"prefix,omitempty" validate:"omitempty,abspath"`
}

// Default returns the stock NixOS locations.
func Default() *Config {
	return &Config{
		BootedSystem: DefaultBootedSystem,
		StagedSystem: DefaultStagedSystem,
		Sentinel:     DefaultSentinel,
	}
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	return Parse(data, path)
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML data on top of Default and validates the result.
// source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnknownKeysFmt, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

// decodeStrict re-decodes data rejecting keys Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}
