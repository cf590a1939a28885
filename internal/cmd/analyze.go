package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/portalworks/wz/internal/hierarchy"
	"github.com/portalworks/wz/internal/output"
	"github.com/portalworks/wz/internal/report"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <export>",
	Short: "Analyze an export and write both report files",
	Long: `Analyze a portal configuration export end to end.

The export argument may be a zip archive or an already-extracted directory.
Archives are extracted first, including nested zips. The loaded snapshot is
then turned into two documents written under fixed names:

  workzone_report.json   flat structural/statistics report
  ui5_hierarchy.json     nested role hierarchy for UI rendering

A short human-readable summary is printed to stdout.

Examples:
  wz analyze ContentTransport_20260203_095800.zip
  wz analyze extracted_workzone --out-dir reports/
  wz analyze export.zip --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeOutDir string

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out-dir", ".", "Directory for the report files")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := openSnapshot(args[0], cfg)
	if err != nil {
		return err
	}
	idx := buildIndex(snap)

	structural := report.Build(snap, idx, reportOptions(cfg))
	tree, warnings := hierarchy.Build(snap, idx, hierarchyOptions(cfg))
	printWarnings(warnings)

	jsonFmt := output.FormatJSON
	reportPath := filepath.Join(analyzeOutDir, cfg.Output.ReportFile)
	if err := emitDocument(structural, jsonFmt, reportPath); err != nil {
		return fmt.Errorf("write structural report: %w", err)
	}
	hierarchyPath := filepath.Join(analyzeOutDir, cfg.Output.HierarchyFile)
	if err := emitDocument(tree, jsonFmt, hierarchyPath); err != nil {
		return fmt.Errorf("write hierarchy report: %w", err)
	}

	printSummary(structural, tree)
	fmt.Printf("\nReports written to %s and %s\n", reportPath, hierarchyPath)
	return nil
}

// printSummary prints the console overview after an analyze run.
func printSummary(structural *report.Report, tree *hierarchy.Report) {
	fmt.Println("Export analysis")
	fmt.Printf("  spaces: %d  pages: %d  apps: %d  roles: %d\n",
		tree.Statistics.TotalSpaces, tree.Statistics.TotalPages,
		tree.Statistics.TotalApps, tree.Statistics.TotalRoles)

	if len(tree.Roles) == 0 {
		return
	}
	fmt.Println("\nRoles:")
	for _, role := range tree.Roles {
		name := "<no id>"
		if role.Title != nil {
			name = *role.Title
		}
		fmt.Printf("  %-40s provider=%-12s spaces=%d pages=%d apps=%d\n",
			name, role.ProviderID, role.SpaceCount, role.TotalPages, role.TotalApps)
	}
}
