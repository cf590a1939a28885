package cmd

import (
	"github.com/portalworks/wz/internal/report"
	"github.com/spf13/cobra"
)

// overviewCmd generates the legacy overview document
var overviewCmd = &cobra.Command{
	Use:   "overview <export>",
	Short: "Generate the legacy overview document",
	Long: `Generate the legacy overview document.

This is the denormalized view predating the structural and hierarchy
reports: export metadata, neutral-locale spaces, display-locale pages with
friendly per-visualization app names, applications with reverse page/space
membership, and per-role provider-matched visualizations.

Note that role-to-user assignments are not part of portal exports; the
role sections show what a role can reach via provider matching, not who
holds the role.

Examples:
  wz overview extracted_workzone
  wz overview export.zip --format yaml
  wz overview extracted_workzone -o workzone_overview.json`,
	Args: cobra.ExactArgs(1),
	RunE: runOverview,
}

var overviewOutput string

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVarP(&overviewOutput, "output", "o", "", "Write to file instead of stdout")
}

func runOverview(cmd *cobra.Command, args []string) error {
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

	doc := report.BuildOverview(snap, reportOptions(cfg))
	return emitDocument(doc, f, overviewOutput)
}
