package messages

// CLI messages for user-facing commands.
const (
	// RootUse is the CLI command name.
	RootUse   = "nixos-needsreboot"
	RootShort = "Report whether the staged NixOS generation needs a reboot"
	RootLong  = "Compares the kernel and systemd of the booted NixOS system against the staged\n" +
		"system profile and writes a sentinel file when a reboot is needed to apply them."

	RootFlagDryRun  = "Print the result instead of writing the sentinel (does not require root)"
	RootFlagConfig  = "Path to the TOML config file (default /etc/nixos-needsreboot.toml)"
	RootFlagVerbose = "Print debug messages"
	RootFlagPrefix  = "Read the booted and staged systems below this directory"

	RootRequiresRoot = "please run this as root (hint: use the '--dry-run' option)"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Name}}: v{{.Version}}\n"

	// VersionsUse is the versions command name.
	VersionsUse      = "versions"
	VersionsShort    = "Show tracked component versions of the booted and staged systems"
	VersionsFlagDiff = "Print a unified diff of the version listings instead of a table"

	VersionsHeaderComponent = "Component"
	VersionsHeaderBooted    = "Booted"
	VersionsHeaderStaged    = "Staged"
	VersionsHeaderNewer     = "Reboot"
	VersionsGenerationRow   = "NixOS generation"
	VersionsYes             = "yes"
	VersionsNo              = "no"
	VersionsNoDifferences   = "No differences."
	VersionsListingLineFmt  = "%s %s\n"
	VersionsDiffLabelFmt    = "%s (%s)"
)
