package reboot

import (
	"errors"
	"fmt"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

// ErrNotNixOS is returned when the staged system profile does not exist.
var ErrNotNixOS = errors.New(messages.RebootNotNixOS)

// IOError reports a filesystem failure outside the component comparison:
// reading generation ids, reading or writing the sentinel.
type IOError struct {
	Path string
	Err  error

	format string
}

func (e *IOError) Error() string {
	return fmt.Sprintf(e.format, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err wraps an IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
