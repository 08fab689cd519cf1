// Package modules decides whether a staged NixOS system carries a newer kernel
// or systemd than the booted one.
package modules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

// Component is a tracked part of a NixOS system whose upgrade requires a reboot.
type Component int

const (
	// Kernel is the Linux kernel linked at <system>/kernel.
	Kernel Component = iota
	// Systemd is the systemd package linked at <system>/systemd.
	Systemd
)

// storePathSegments is how many leading segments of a link target (counting the
// empty segment before the first slash) make up /nix/store/<hash>-<name>.
const storePathSegments = 4

// kernelVersionSegment is the index of the version directory in
// /nix/store/<hash>-linux-<version>/lib/modules/<version> when split on "/".
const kernelVersionSegment = 6

const kernelModulesDir = "lib/modules"

// Components returns every tracked component in evaluation order.
func Components() []Component {
	return []Component{Kernel, Systemd}
}

// String returns the display name used in log lines and reports.
func (c Component) String() string {
	switch c {
	case Kernel:
		return messages.ModulesKernelName
	case Systemd:
		return messages.ModulesSystemdName
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

// linkName is the entry inside a system root that links to the component's store path.
func (c Component) linkName() string {
	switch c {
	case Kernel:
		return "kernel"
	default:
		return "systemd"
	}
}

// truncatesTarget reports whether the link points inside the package and has to
// be cut back to the package's store path.
func (c Component) truncatesTarget() bool {
	return c == Kernel
}

// Resolve returns the store path representing c inside the system at root.
func (c Component) Resolve(sys System, root string) (string, error) {
	link := filepath.Join(root, c.linkName())
	target, err := sys.Readlink(link)
	if err != nil {
		return "", &PathResolutionError{Component: c, Link: link, Err: err}
	}
	if !c.truncatesTarget() {
		return target, nil
	}
	segments := strings.Split(target, "/")
	if len(segments) < storePathSegments {
		return "", &PathResolutionError{Component: c, Link: link, Target: target}
	}
	return "/" + strings.Join(segments[1:storePathSegments], "/"), nil
}

// Version extracts the raw version string of c from its resolved store path.
func (c Component) Version(sys System, storePath string) (string, error) {
	switch c {
	case Kernel:
		return kernelVersion(sys, storePath)
	default:
		return systemdVersion(storePath)
	}
}

// Versions resolves c in both roots and returns the raw (old, new) version pair.
func (c Component) Versions(sys System, oldRoot string, newRoot string) (string, string, error) {
	oldPath, err := c.Resolve(sys, oldRoot)
	if err != nil {
		return "", "", err
	}
	newPath, err := c.Resolve(sys, newRoot)
	if err != nil {
		return "", "", err
	}
	oldVersion, err := c.Version(sys, oldPath)
	if err != nil {
		return "", "", err
	}
	newVersion, err := c.Version(sys, newPath)
	if err != nil {
		return "", "", err
	}
	return oldVersion, newVersion, nil
}
