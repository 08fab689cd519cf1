package messages

// Configuration messages.
const (
	ConfigReadFmt          = "read config %s: %w"
	ConfigInvalidFmt       = "invalid config %s: %w"
	ConfigUnknownKeysFmt   = "config %s contains unrecognized keys: %w"
	ConfigValidationFmt    = "config %s: %s"
	ConfigFieldRequiredFmt = "%s is required"
	ConfigFieldAbsoluteFmt = "%s must be an absolute path"
	ConfigFieldInvalidFmt  = "%s is invalid (%s)"
	ConfigExpandPathFmt    = "expand config path %s: %w"
)
