package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/portalworks/wz/internal/cache"
	"github.com/portalworks/wz/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .wz directory and configuration",
	Long: `Initialize the .wz directory with a default config.yaml and snapshot cache.

The config file records locale preferences, the provider fallback, output
file names and formats. Commands look for .wz in the current directory and
its parents, so one init at a project root covers its subdirectories.

Examples:
  wz init          # Initialize in current directory
  wz init --force  # Overwrite an existing config with defaults`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	wzDir := filepath.Join(cwd, config.ConfigDirName)
	cfgPath := filepath.Join(wzDir, config.ConfigFileName)

	// Check if config already exists
	if _, err := os.Stat(cfgPath); err == nil {
		if !initForce {
			relPath, _ := filepath.Rel(cwd, cfgPath)
			fmt.Printf("Already initialized at %s\n", relPath)
			return nil
		}
		if err := os.Remove(cfgPath); err != nil {
			return fmt.Errorf("removing existing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config path: %w", err)
	}

	written, err := config.SaveDefault(cwd)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the snapshot cache database alongside the config
	c, err := cache.Open(wzDir)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer c.Close()

	relPath, _ := filepath.Rel(cwd, written)
	fmt.Printf("Initialized wz configuration at %s\n", relPath)

	return nil
}
