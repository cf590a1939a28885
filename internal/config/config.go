package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the wz configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the wz configuration directory
const ConfigDirName = ".wz"

// Config holds all wz configuration
type Config struct {
	Locales  LocalesConfig  `yaml:"locales"`
	Provider ProviderConfig `yaml:"provider"`
	Output   OutputConfig   `yaml:"output"`
	Cache    CacheConfig    `yaml:"cache"`
}

// LocalesConfig holds the canonical locale tags of the export. Every entity
// exists once per exported language; only these two variants are read.
type LocalesConfig struct {
	Neutral string `yaml:"neutral"`
	Display string `yaml:"display"`
}

// ProviderConfig holds provider-id matching configuration
type ProviderConfig struct {
	Fallback string `yaml:"fallback"`
}

// OutputConfig holds configuration for report output
type OutputConfig struct {
	ReportFile       string `yaml:"report_file"`
	HierarchyFile    string `yaml:"hierarchy_file"`
	DefaultFormat    string `yaml:"default_format"`
	PlaceholderTitle string `yaml:"placeholder_title"`
	ExtractDir       string `yaml:"extract_dir"`
}

// CacheConfig holds configuration for the snapshot cache
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .wz/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Merge with defaults
	merged := Merge(loaded, DefaultConfig())

	// Validate the merged config
	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .wz directory by walking up from startDir.
// Returns the path to the .wz directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .wz directory if it doesn't exist.
// Returns the path to the .wz directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if !IsValidFormat(cfg.Output.DefaultFormat) {
		return fmt.Errorf("%w: default_format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.DefaultFormat)
	}

	if cfg.Locales.Neutral == "" {
		return fmt.Errorf("%w: locales.neutral must not be empty", ErrInvalidConfig)
	}

	if cfg.Locales.Display == "" {
		return fmt.Errorf("%w: locales.display must not be empty", ErrInvalidConfig)
	}

	if cfg.Locales.Neutral == cfg.Locales.Display {
		return fmt.Errorf("%w: locales.neutral and locales.display must differ, both are %q",
			ErrInvalidConfig, cfg.Locales.Neutral)
	}

	if cfg.Output.ReportFile == "" || cfg.Output.HierarchyFile == "" {
		return fmt.Errorf("%w: output file names must not be empty", ErrInvalidConfig)
	}

	return nil
}

// SaveDefault writes the default configuration to .wz/config.yaml in workDir.
// Creates the .wz directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	// Add header comment
	header := "# wz CLI configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
