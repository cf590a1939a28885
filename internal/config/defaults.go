package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Locales: LocalesConfig{
			Neutral: "master",
			Display: "en",
		},
		Provider: ProviderConfig{
			Fallback: "BTP",
		},
		Output: OutputConfig{
			ReportFile:       "workzone_report.json",
			HierarchyFile:    "ui5_hierarchy.json",
			DefaultFormat:    "json",
			PlaceholderTitle: "Untitled",
			ExtractDir:       "extracted_workzone",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Locales = mergeLocalesConfig(loaded.Locales, defaults.Locales)
	result.Provider = mergeProviderConfig(loaded.Provider, defaults.Provider)
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	// Cache.Enabled: YAML unmarshals missing as false; stay enabled unless
	// the user disables caching through the CLI flag instead.
	result.Cache.Enabled = loaded.Cache.Enabled || defaults.Cache.Enabled

	return result
}

func mergeLocalesConfig(loaded, defaults LocalesConfig) LocalesConfig {
	result := LocalesConfig{}

	if loaded.Neutral != "" {
		result.Neutral = loaded.Neutral
	} else {
		result.Neutral = defaults.Neutral
	}

	if loaded.Display != "" {
		result.Display = loaded.Display
	} else {
		result.Display = defaults.Display
	}

	return result
}

func mergeProviderConfig(loaded, defaults ProviderConfig) ProviderConfig {
	result := ProviderConfig{}

	if loaded.Fallback != "" {
		result.Fallback = loaded.Fallback
	} else {
		result.Fallback = defaults.Fallback
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.ReportFile != "" {
		result.ReportFile = loaded.ReportFile
	} else {
		result.ReportFile = defaults.ReportFile
	}

	if loaded.HierarchyFile != "" {
		result.HierarchyFile = loaded.HierarchyFile
	} else {
		result.HierarchyFile = defaults.HierarchyFile
	}

	if loaded.DefaultFormat != "" {
		result.DefaultFormat = loaded.DefaultFormat
	} else {
		result.DefaultFormat = defaults.DefaultFormat
	}

	if loaded.PlaceholderTitle != "" {
		result.PlaceholderTitle = loaded.PlaceholderTitle
	} else {
		result.PlaceholderTitle = defaults.PlaceholderTitle
	}

	if loaded.ExtractDir != "" {
		result.ExtractDir = loaded.ExtractDir
	} else {
		result.ExtractDir = defaults.ExtractDir
	}

	return result
}

// ValidFormats lists the valid values for output format
var ValidFormats = []string{"json", "yaml"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}
