package messages

// Component version messages.
const (
	// ModulesKernelName is the display name of the kernel component.
	ModulesKernelName  = "Linux Kernel"
	ModulesSystemdName = "Systemd"

	ModulesReadLinkFmt          = "resolve %s: read link %s: %v"
	ModulesStorePathTooShortFmt = "resolve %s: link %s points to %q, expected at least %d path segments"
	ModulesListDirFmt           = "read %s version: list %s: %v"
	ModulesEmptyDir             = "expected one directory"
	ModulesKernelVersionFmt     = "could not determine Linux kernel version from path: %s"
	ModulesSystemdVersionFmt    = "could not determine Systemd version from path: %s"
)
