// Package config loads utilmd defaults from global and local configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tyemirov/utilmd/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// HomeDirectory overrides the user's home directory when non-empty.
	HomeDirectory string
}

// ApplicationConfiguration holds defaults for every mode.
type ApplicationConfiguration struct {
	ExcludeDirs []string          `mapstructure:"exclude_dirs"`
	MOC         MOCConfiguration  `mapstructure:"moc"`
	Tree        TreeConfiguration `mapstructure:"tree"`
	Dump        DumpConfiguration `mapstructure:"dump"`
}

// MOCConfiguration configures map of content generation.
type MOCConfiguration struct {
	StartLevel *int  `mapstructure:"start_level"`
	Headings   *bool `mapstructure:"headings"`
}

// TreeConfiguration configures the tree printer.
type TreeConfiguration struct {
	Clipboard *bool `mapstructure:"clipboard"`
}

// DumpConfiguration configures structured tree dumps.
type DumpConfiguration struct {
	Format string `mapstructure:"format"`
}

// LoadApplicationConfiguration loads the global file and then the local file, local values winning.
// Missing files are not an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.ExcludeDirs = utils.DeduplicatePatterns(merged.ExcludeDirs)
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if len(override.ExcludeDirs) > 0 {
		result.ExcludeDirs = append([]string{}, override.ExcludeDirs...)
	}
	if override.MOC.StartLevel != nil {
		result.MOC.StartLevel = cloneInt(override.MOC.StartLevel)
	}
	if override.MOC.Headings != nil {
		result.MOC.Headings = cloneBool(override.MOC.Headings)
	}
	if override.Tree.Clipboard != nil {
		result.Tree.Clipboard = cloneBool(override.Tree.Clipboard)
	}
	if override.Dump.Format != "" {
		result.Dump.Format = override.Dump.Format
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
