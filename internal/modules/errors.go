package modules

import (
	"errors"
	"fmt"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

// PathResolutionError reports that a component's link inside a system root is
// missing, unreadable, or points somewhere too shallow to name a store path.
type PathResolutionError struct {
	Component Component
	// Link is the symlink that was read, e.g. /run/booted-system/kernel.
	Link string
	// Target is the link destination when it was readable.
	Target string
	Err    error
}

func (e *PathResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.ModulesReadLinkFmt, e.Component, e.Link, e.Err)
	}
	return fmt.Sprintf(messages.ModulesStorePathTooShortFmt, e.Component, e.Link, e.Target, storePathSegments)
}

func (e *PathResolutionError) Unwrap() error {
	return e.Err
}

// VersionParseError reports that a resolved component path could not be turned
// into a version string.
type VersionParseError struct {
	Component Component
	// Path is the offending path: the listed directory, or the path being split.
	Path string
	Err  error
}

func (e *VersionParseError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf(messages.ModulesListDirFmt, e.Component, e.Path, e.Err)
	case e.Component == Kernel:
		return fmt.Sprintf(messages.ModulesKernelVersionFmt, e.Path)
	default:
		return fmt.Sprintf(messages.ModulesSystemdVersionFmt, e.Path)
	}
}

func (e *VersionParseError) Unwrap() error {
	return e.Err
}

// errEmptyModulesDir is wrapped by VersionParseError when the kernel modules
// directory has no entries.
var errEmptyModulesDir = errors.New(messages.ModulesEmptyDir)

// IsPathResolutionError reports whether err wraps a PathResolutionError.
func IsPathResolutionError(err error) bool {
	var pe *PathResolutionError
	return errors.As(err, &pe)
}

// IsVersionParseError reports whether err wraps a VersionParseError.
func IsVersionParseError(err error) bool {
	var ve *VersionParseError
	return errors.As(err, &ve)
}
