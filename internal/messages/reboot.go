package messages

// Reboot check messages.
const (
	// RebootNotNixOS is reported when no staged system profile exists.
	RebootNotNixOS          = "This binary is intended to run only on NixOS."
	RebootReadSystemIDFmt   = "read system id %s: %v"
	RebootReadSentinelFmt   = "read sentinel %s: %v"
	RebootWriteSentinelFmt  = "write sentinel %s: %v"
	RebootStatPathFmt       = "stat %s: %v"
	RebootCompareModulesFmt = "compare components: %w"

	RebootLatestGeneration   = "you are using the latest NixOS generation, no need to reboot"
	RebootNoUpdates          = "no updates available, moar uptime!!!"
	RebootSentinelExistsFmt  = "reboot already flagged by %s"
	RebootNeededFmt          = "staged generation %s needs a reboot (booted %s)"
	RebootSentinelWrittenFmt = "wrote %s"
	RebootReasonFmt          = "reboot required: staged NixOS generation %s differs in kernel or systemd\n"

	RebootOpenLockFmt    = "open lock %s: %w"
	RebootLockFmt        = "lock %s: %w"
	RebootLockTimeoutFmt = "timed out waiting for lock after %s"
	RebootCreateTempFmt  = "create temp file: %w"
	RebootWriteTempFmt   = "write temp file: %w"
	RebootSyncTempFmt    = "sync temp file: %w"
	RebootCloseTempFmt   = "close temp file: %w"
	RebootRenameTempFmt  = "move sentinel into place: %w"
)
