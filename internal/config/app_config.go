// Package config loads pathtree defaults from global and local YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/pathtree/internal/utils"
)

const (
	errorWorkingDirectoryFormat = "determine working directory: %w"
	errorResolvePathFormat      = "resolve configuration path %s: %w"
	errorStatFormat             = "stat configuration %s: %w"
	errorDirectoryFormat        = "configuration path %s is a directory"
	errorReadFormat             = "read configuration from %s: %w"
	errorDecodeFormat           = "decode configuration from %s: %w"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the configured defaults for every command.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration holds defaults for the tree command. A nil field is unset
// and leaves the built-in default in place.
type TreeConfiguration struct {
	MaxDepth *int  `mapstructure:"max_depth"`
	Color    *bool `mapstructure:"color"`
	Details  *bool `mapstructure:"details"`
	Tags     *bool `mapstructure:"tags"`
	Copy     *bool `mapstructure:"copy"`
}

// LoadApplicationConfiguration reads the global configuration under the user
// home and overlays the local or explicitly named file on top of it. Missing
// files contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	localConfig, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	return merged.Merge(localConfig), nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath, nil
	}
	if workingDirectory == "" {
		absolutePath, absolutePathError := filepath.Abs(explicitPath)
		if absolutePathError != nil {
			return "", fmt.Errorf(errorResolvePathFormat, explicitPath, absolutePathError)
		}
		return absolutePath, nil
	}
	return filepath.Join(workingDirectory, explicitPath), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf(errorStatFormat, path, statError)
	}
	if fileInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf(errorDirectoryFormat, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorReadFormat, path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorDecodeFormat, path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (configuration TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := configuration
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.Color != nil {
		result.Color = cloneBool(override.Color)
	}
	if override.Details != nil {
		result.Details = cloneBool(override.Details)
	}
	if override.Tags != nil {
		result.Tags = cloneBool(override.Tags)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
