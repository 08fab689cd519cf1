package modules

import (
	"path/filepath"
	"strings"
)

// kernelVersion reads <storePath>/lib/modules and takes the version from the
// first entry, e.g. /nix/store/<hash>-linux-6.1.2/lib/modules/6.1.2.
func kernelVersion(sys System, storePath string) (string, error) {
	dir := filepath.Join(storePath, kernelModulesDir)
	entries, err := sys.ReadDir(dir)
	if err != nil {
		return "", &VersionParseError{Component: Kernel, Path: dir, Err: err}
	}
	if len(entries) == 0 {
		return "", &VersionParseError{Component: Kernel, Path: dir, Err: errEmptyModulesDir}
	}
	entryPath := dir + "/" + entries[0].Name()
	segments := strings.Split(entryPath, "/")
	if len(segments) <= kernelVersionSegment {
		return "", &VersionParseError{Component: Kernel, Path: entryPath}
	}
	return segments[kernelVersionSegment], nil
}

// systemdVersion drops the store hash and package name from
// /nix/store/<hash>-systemd-<version>; hyphens inside the version are kept.
func systemdVersion(storePath string) (string, error) {
	parts := strings.Split(storePath, "-")
	if len(parts) < 3 {
		return "", &VersionParseError{Component: Systemd, Path: storePath}
	}
	return strings.Join(parts[2:], "-"), nil
}
