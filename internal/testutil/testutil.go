package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SystemLayout describes a fake NixOS system root.
type SystemLayout struct {
	// ID is written to <root>/nixos-version when non-empty.
	ID string
	// Kernel is the kernel version; empty leaves <root>/kernel missing.
	Kernel string
	// Systemd is the systemd version; empty leaves <root>/systemd missing.
	Systemd string
}

// KernelStorePath returns the store path WriteSystem uses for a kernel version.
func KernelStorePath(version string) string {
	return "/nix/store/" + fakeHash(version) + "-linux-" + version
}

// SystemdStorePath returns the store path WriteSystem uses for a systemd version.
func SystemdStorePath(version string) string {
	return "/nix/store/" + fakeHash(version) + "-systemd-" + version
}

// WriteSystem lays out a system root under prefix the way NixOS does: root
// holds nixos-version plus kernel and systemd links pointing at absolute
// /nix/store paths, and the kernel's lib/modules directory exists under prefix.
// t is the active test; prefix is the fake filesystem root; root is the system
// path as seen from inside it, e.g. /run/booted-system.
func WriteSystem(t *testing.T, prefix string, root string, layout SystemLayout) {
	t.Helper()
	rootDir := filepath.Join(prefix, root)
	MkdirAll(t, rootDir)
	if layout.ID != "" {
		WriteFile(t, filepath.Join(rootDir, "nixos-version"), layout.ID)
	}
	if layout.Kernel != "" {
		storePath := KernelStorePath(layout.Kernel)
		MkdirAll(t, filepath.Join(prefix, storePath, "lib", "modules", layout.Kernel))
		Symlink(t, storePath+"/bzImage", filepath.Join(rootDir, "kernel"))
	}
	if layout.Systemd != "" {
		storePath := SystemdStorePath(layout.Systemd)
		MkdirAll(t, filepath.Join(prefix, storePath))
		Symlink(t, storePath, filepath.Join(rootDir, "systemd"))
	}
}

// SystemStorePath returns the store path WriteLinkedSystem and WriteProfile
// build a system with generation id at.
func SystemStorePath(id string) string {
	return "/nix/store/" + fakeHash("system-"+id) + "-nixos-system-" + id
}

// WriteLinkedSystem builds the system in the store and points root at it with
// an absolute link, the way /run/booted-system looks on a real machine.
// It returns the store path.
func WriteLinkedSystem(t *testing.T, prefix string, root string, layout SystemLayout) string {
	t.Helper()
	storePath := SystemStorePath(layout.ID)
	WriteSystem(t, prefix, storePath, layout)
	Symlink(t, storePath, filepath.Join(prefix, root))
	return storePath
}

// WriteProfile builds the system in the store and makes it the current
// generation of profile: profile -> <name>-<generation>-link -> store path,
// with the first link relative and the second absolute like nix-env writes them.
// It returns the store path.
func WriteProfile(t *testing.T, prefix string, profile string, generation int, layout SystemLayout) string {
	t.Helper()
	storePath := SystemStorePath(layout.ID)
	WriteSystem(t, prefix, storePath, layout)
	linkName := fmt.Sprintf("%s-%d-link", filepath.Base(profile), generation)
	Symlink(t, storePath, filepath.Join(prefix, filepath.Dir(profile), linkName))
	Symlink(t, linkName, filepath.Join(prefix, profile))
	return storePath
}

// MkdirAll creates dir and its parents.
func MkdirAll(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Symlink creates link pointing at target, replacing an existing link.
func Symlink(t *testing.T, target string, link string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(link))
	_ = os.Remove(link)
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink %s -> %s: %v", link, target, err)
	}
}

// fakeHash derives a 32 character store hash from s.
func fakeHash(s string) string {
	const alphabet = "0123456789abcdfghijklmnpqrsvwxyz"
	var b strings.Builder
	sum := uint32(2166136261)
	for i := 0; i < 32; i++ {
		sum ^= uint32(s[i%len(s)])
		sum *= 16777619
		b.WriteByte(alphabet[sum%uint32(len(alphabet))])
	}
	return b.String()
}
