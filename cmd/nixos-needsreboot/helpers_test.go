package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/conn-castle/nixos-needsreboot/internal/testutil"
)

const (
	testBooted = "/run/booted-system"
	testStaged = "/nix/var/nix/profiles/system"
)

// testEnv is a fake machine: a prefix holding both systems, a sentinel path,
// and a config file pointing at them.
type testEnv struct {
	prefix     string
	sentinel   string
	configPath string
}

func newTestEnv(t *testing.T, booted, staged testutil.SystemLayout) testEnv {
	t.Helper()
	env := testEnv{
		prefix:   t.TempDir(),
		sentinel: filepath.Join(t.TempDir(), "reboot-required"),
	}
	testutil.WriteSystem(t, env.prefix, testBooted, booted)
	testutil.WriteSystem(t, env.prefix, testStaged, staged)
	env.configPath = filepath.Join(t.TempDir(), "nixos-needsreboot.toml")
	testutil.WriteFile(t, env.configPath, fmt.Sprintf(
		"booted_system = %q\nstaged_system = %q\nsentinel = %q\nprefix = %q\n",
		testBooted, testStaged, env.sentinel, env.prefix,
	))
	return env
}

func withEUID(t *testing.T, euid int) {
	t.Helper()
	orig := getEUID
	getEUID = func() int { return euid }
	t.Cleanup(func() { getEUID = orig })
}

func withGetenv(t *testing.T, values map[string]string) {
	t.Helper()
	orig := getenv
	getenv = func(key string) string { return values[key] }
	t.Cleanup(func() { getenv = orig })
}
