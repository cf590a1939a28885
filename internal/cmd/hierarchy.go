package cmd

import (
	"github.com/portalworks/wz/internal/hierarchy"
	"github.com/spf13/cobra"
)

// hierarchyCmd generates the nested hierarchy report
var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy <export>",
	Short: "Generate the nested role hierarchy",
	Long: `Generate the nested role → space → page → application tree.

Each role's subtree merges two linkage sources: explicitly curated direct
relations, and a provider-id matching fallback over the display-locale
pages. Space subtrees referenced by several roles are deep-copied per role
so rollup counts never leak between them.

Roles without a provider id are emitted with the configured fallback
provider. Provider ids that match an application id as a non-prefix
substring are flagged on stderr as data-quality warnings.

Examples:
  wz hierarchy extracted_workzone              # JSON to stdout
  wz hierarchy export.zip --format yaml        # YAML output
  wz hierarchy extracted_workzone -o tree.json # Write to file`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchy,
}

var hierarchyOutput string

func init() {
	rootCmd.AddCommand(hierarchyCmd)
	hierarchyCmd.Flags().StringVarP(&hierarchyOutput, "output", "o", "", "Write to file instead of stdout")
}

func runHierarchy(cmd *cobra.Command, args []string) error {
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

	doc, warnings := hierarchy.Build(snap, buildIndex(snap), hierarchyOptions(cfg))
	printWarnings(warnings)
	return emitDocument(doc, f, hierarchyOutput)
}
