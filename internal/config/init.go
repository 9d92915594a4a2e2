package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/pathtree/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `tree:
  # max_depth: 3
  color: true
  details: false
  tags: false
  copy: false
`

	errorInitWorkingDirectoryFormat = "determine working directory for configuration: %w"
	errorInitHomeFormat             = "resolve home directory for configuration: %w"
	errorInitCreateDirectoryFormat  = "create configuration directory %s: %w"
	errorInitUnsupportedFormat      = "unsupported init target %q"
	errorInitExistsFormat           = "configuration file already exists at %s"
	errorInitInspectFormat          = "inspect configuration path %s: %w"
	errorInitWriteFormat            = "write configuration to %s: %w"
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns the written path.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := initDestination(options)
	if destinationError != nil {
		return "", destinationError
	}

	if _, statError := os.Stat(destinationPath); statError == nil {
		if !options.Force {
			return "", fmt.Errorf(errorInitExistsFormat, destinationPath)
		}
	} else if !os.IsNotExist(statError) {
		return "", fmt.Errorf(errorInitInspectFormat, destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o600); writeError != nil {
		return "", fmt.Errorf(errorInitWriteFormat, destinationPath, writeError)
	}
	return destinationPath, nil
}

func initDestination(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return "", fmt.Errorf(errorInitWorkingDirectoryFormat, workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf(errorInitHomeFormat, homeError)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if makeDirectoryError := os.MkdirAll(configurationDirectory, 0o755); makeDirectoryError != nil {
			return "", fmt.Errorf(errorInitCreateDirectoryFormat, configurationDirectory, makeDirectoryError)
		}
		return filepath.Join(configurationDirectory, utils.GlobalConfigFileName), nil
	default:
		return "", fmt.Errorf(errorInitUnsupportedFormat, options.Target)
	}
}
