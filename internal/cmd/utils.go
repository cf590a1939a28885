package cmd

import (
	"fmt"
	"os"

	"github.com/portalworks/wz/internal/config"
	"github.com/portalworks/wz/internal/hierarchy"
	"github.com/portalworks/wz/internal/index"
	"github.com/portalworks/wz/internal/loader"
	"github.com/portalworks/wz/internal/locale"
	"github.com/portalworks/wz/internal/output"
	"github.com/portalworks/wz/internal/report"
	"github.com/portalworks/wz/internal/snapshot"
)

// Shared utility functions for command implementations

// loadConfig resolves configuration from --config or the nearest .wz
// directory, falling back to defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(cwd)
}

// openSnapshot materializes the snapshot for an export argument (zip or
// extracted directory), honoring config and the --no-cache flag.
func openSnapshot(source string, cfg *config.Config) (*snapshot.Snapshot, error) {
	opts := loader.OpenOptions{
		ExtractDir: cfg.Output.ExtractDir,
		Verbose:    verbose,
	}
	if cfg.Cache.Enabled && !noCache {
		if wzDir, err := config.FindConfigDir("."); err == nil {
			opts.CacheDir = wzDir
		}
	}
	return loader.Open(source, opts)
}

// buildIndex derives the lookup maps once per invocation.
func buildIndex(snap *snapshot.Snapshot) *index.Index {
	return index.Build(snap)
}

func localesFromConfig(cfg *config.Config) locale.Filter {
	return locale.Filter{Neutral: cfg.Locales.Neutral, Display: cfg.Locales.Display}
}

func reportOptions(cfg *config.Config) report.Options {
	return report.Options{
		Locales:     localesFromConfig(cfg),
		Placeholder: cfg.Output.PlaceholderTitle,
	}
}

func hierarchyOptions(cfg *config.Config) hierarchy.Options {
	return hierarchy.Options{
		Locales:          localesFromConfig(cfg),
		Placeholder:      cfg.Output.PlaceholderTitle,
		ProviderFallback: cfg.Provider.Fallback,
	}
}

// resolveFormat picks the output format from --format, then config, then the
// package default.
func resolveFormat(cfg *config.Config) (output.Format, error) {
	if outputFormat != "" {
		return output.ParseFormat(outputFormat)
	}
	if cfg.Output.DefaultFormat != "" {
		return output.ParseFormat(cfg.Output.DefaultFormat)
	}
	return output.DefaultFormat, nil
}

// emitDocument serializes a document to stdout or a file.
func emitDocument(doc interface{}, f output.Format, path string) error {
	out := os.Stdout
	if path != "" {
		var err error
		out, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	}
	return output.NewFormatter(f).FormatToWriter(out, doc)
}

// printWarnings writes builder warnings to stderr.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "wz: warning: %s\n", w)
	}
}
