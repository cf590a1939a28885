package cmd

import (
	"github.com/portalworks/wz/internal/hierarchy"
	"github.com/portalworks/wz/internal/report"
	"github.com/spf13/cobra"
)

// statsCmd prints only the statistics blocks
var statsCmd = &cobra.Command{
	Use:   "stats <export>",
	Short: "Show catalog and hierarchy statistics",
	Long: `Show only the statistics blocks of both reports.

The structural statistics count the catalog: spaces in the neutral locale,
all roles, all applications. The hierarchy statistics count what the role
trees actually reach, so the two sets of numbers legitimately differ when
roles share spaces or leave parts of the catalog unreferenced.

Examples:
  wz stats extracted_workzone
  wz stats export.zip --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	idx := buildIndex(snap)
	structural := report.Build(snap, idx, reportOptions(cfg))
	tree, _ := hierarchy.Build(snap, idx, hierarchyOptions(cfg))

	doc := map[string]interface{}{
		"report":    structural.Statistics,
		"hierarchy": tree.Statistics,
	}
	return emitDocument(doc, f, "")
}
