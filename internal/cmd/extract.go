package cmd

import (
	"fmt"
	"os"

	"github.com/portalworks/wz/internal/archive"
	"github.com/spf13/cobra"
)

// extractCmd unpacks an export archive without analyzing it
var extractCmd = &cobra.Command{
	Use:   "extract <archive> [dir]",
	Short: "Extract an export archive",
	Long: `Extract a portal export archive, including nested archives.

Portal exports ship as a zip of zips: the outer archive holds one inner
archive per content package. Extraction recurses until no archives remain,
unpacking each inner archive next to itself into a directory named after
it. The result can be fed to any other command, or inspected directly.

Examples:
  wz extract export.zip              # Into extracted_workzone/
  wz extract export.zip /tmp/wzdata  # Into an explicit directory`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dest := cfg.Output.ExtractDir
	if len(args) > 1 {
		dest = args[1]
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "wz: extracting %s to %s\n", args[0], dest)
	}

	if err := archive.ExtractRecursive(args[0], dest); err != nil {
		return fmt.Errorf("failed to extract %s: %w", args[0], err)
	}

	fmt.Printf("Extracted to %s\n", dest)
	return nil
}
