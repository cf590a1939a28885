package cmd

import (
	"github.com/portalworks/wz/internal/report"
	"github.com/spf13/cobra"
)

// reportCmd generates the structural report
var reportCmd = &cobra.Command{
	Use:   "report <export>",
	Short: "Generate the flat structural report",
	Long: `Generate the flat structural/statistics report.

Includes:
  - statistics (space/role/app catalog totals)
  - structure (space → page → application listing)
  - roles_analysis (per-role app union and direct-relation spaces)

The space listing accepts both canonical locales while total_spaces counts
the neutral locale only; that asymmetry is intentional and mirrors how the
export duplicates one space per locale pair.

Examples:
  wz report extracted_workzone                # JSON to stdout
  wz report export.zip --format yaml          # YAML output
  wz report extracted_workzone -o report.json # Write to file`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var reportOutput string

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write to file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := openSnapshot(args[0], cfg)
	if err != nil {
		return err
	}

	f, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	doc := report.Build(snap, buildIndex(snap), reportOptions(cfg))
	return emitDocument(doc, f, reportOutput)
}
