package messages

// Doctor messages.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check that this machine can be inspected for pending reboots"

	DoctorHeaderFmt            = "Checking booted %s against staged %s...\n"
	DoctorResultLineFmt        = "%s %-12s %s\n"
	DoctorRecommendationPrefix = "      💡 "
	DoctorRecommendationIndent = "         "
	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorSuccessSummary       = "All checks passed."
	DoctorFailureSummary       = "Some checks failed. Review the recommendations above."

	DoctorCheckNamePrivileges = "Privileges"
	DoctorCheckNameSystems    = "Systems"
	DoctorCheckNameComponents = "Components"
	DoctorCheckNameSentinel   = "Sentinel"

	DoctorRunningAsRoot            = "running as root"
	DoctorNotRootFmt               = "running as uid %d; the sentinel cannot be written"
	DoctorNotRootRecommend         = "Run as root, or use --dry-run to only print the result."
	DoctorSystemMissingFmt         = "%s system %s does not exist"
	DoctorSystemMissingRecommend   = "This tool only works on NixOS with a built system profile."
	DoctorSystemIDFmt              = "%s system %s is generation %s"
	DoctorSystemIDUnreadableFmt    = "%s system %s has no readable %s: %v"
	DoctorComponentVersionsFmt     = "%s: booted %s, staged %s"
	DoctorComponentNewerFmt        = "%s: booted %s, staged %s (reboot needed)"
	DoctorComponentFailedFmt       = "%s: %v"
	DoctorComponentFailedRecommend = "The system layout no longer matches what this tool expects; please report the path above."
	DoctorSentinelDirMissingFmt    = "directory for %s is missing or not a directory"
	DoctorSentinelDirRecommend     = "Create the directory or point 'sentinel' in the config somewhere writable."
	DoctorSentinelPresentFmt       = "%s exists; a reboot is already pending"
	DoctorSentinelAbsentFmt        = "%s is not set"

	DoctorLabelBooted = "booted"
	DoctorLabelStaged = "staged"
)
