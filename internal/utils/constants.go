package utils

const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "utilmd failed"
	// ConfigFileName is the local configuration file looked up in the working directory.
	ConfigFileName = ".utilmd.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding GlobalConfigFileName.
	GlobalConfigDirectoryName = ".utilmd"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)
