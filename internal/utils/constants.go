package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

const (
	// ApplicationName is the name of the executable.
	ApplicationName = "pathtree"
	// GitDirectoryName is the directory marking a git work tree.
	GitDirectoryName = ".git"
	// GlobalConfigDirectoryName is the directory under the user home holding the global configuration.
	GlobalConfigDirectoryName = ".pathtree"
	// GlobalConfigFileName is the global configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the configuration file looked up in the working directory.
	LocalConfigFileName = ".pathtree.yaml"
	// ConfigEnvironmentVariable names an explicit configuration file.
	ConfigEnvironmentVariable = "PATHTREE_CONFIG"
)

const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %v"
	// ApplicationExecutionFailedMessage prefixes the error that ended the application.
	ApplicationExecutionFailedMessage = "pathtree failed"
	// EnvironmentFileName is the dotenv file loaded from the working directory.
	EnvironmentFileName = ".env"
)
