package modules

import (
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// System abstracts the filesystem reads needed to resolve component versions.
// Paths passed in and returned are always as seen from inside the system being
// inspected (for example /nix/store/...), never host paths.
type System interface {
	Readlink(name string) (string, error)
	ReadDir(name string) ([]os.DirEntry, error)
}

// RealSystem implements System using the OS filesystem.
// Prefix, when set, is the directory the inspected system is mounted at (for
// example /mnt). Symlinks met on the way to a path are then resolved inside
// Prefix, so absolute links such as /run/booted-system -> /nix/store/... never
// escape to the host.
type RealSystem struct {
	Prefix string
}

// Readlink returns the destination of a symbolic link. Only the parent
// directory is resolved; the link itself is read, not followed.
func (s RealSystem) Readlink(name string) (string, error) {
	dir, err := s.HostPath(filepath.Dir(name))
	if err != nil {
		return "", err
	}
	return os.Readlink(filepath.Join(dir, filepath.Base(name)))
}

// ReadDir reads the named directory, returning its entries sorted by filename.
func (s RealSystem) ReadDir(name string) ([]os.DirEntry, error) {
	path, err := s.HostPath(name)
	if err != nil {
		return nil, err
	}
	return os.ReadDir(path)
}

// HostPath maps name, as seen inside the inspected system, to a path on this
// host. Without a Prefix name is returned unchanged. Components that do not
// exist are appended as-is, so the caller's own open or stat reports them.
func (s RealSystem) HostPath(name string) (string, error) {
	if s.Prefix == "" {
		return name, nil
	}
	return securejoin.SecureJoin(s.Prefix, name)
}
