package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/nixos-needsreboot/internal/messages"
)

const (
	// DefaultConfigPath is read when neither --config nor EnvConfigPath is set.
	DefaultConfigPath = "/etc/nixos-needsreboot.toml"
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "NIXOS_NEEDSREBOOT_CONFIG"

	// DefaultBootedSystem links to the system the machine booted into.
	DefaultBootedSystem = "/run/booted-system"
	// DefaultStagedSystem links to the newest system generation.
	DefaultStagedSystem = "/nix/var/nix/profiles/system"
	// DefaultSentinel signals that a reboot is required.
	DefaultSentinel = "/var/run/reboot-required"

	// SystemIDFile is the file in each system root that identifies the generation.
	SystemIDFile = "nixos-version"
)

// ConfigPath picks the config file to load. The flag wins over the environment,
// which wins over DefaultConfigPath. explicit is false only for the default, in
// which case a missing file is not an error.
func ConfigPath(flagValue string, getenv func(string) string) (path string, explicit bool, err error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" && getenv != nil {
		raw = strings.TrimSpace(getenv(EnvConfigPath))
	}
	if raw == "" {
		return DefaultConfigPath, false, nil
	}
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", true, fmt.Errorf(messages.ConfigExpandPathFmt, raw, err)
	}
	return expanded, true, nil
}
