package cmd

import (
	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/core"
	"github.com/miradorhq/mirador/internal/contract"
)

// checkCmd validates the warehouse exports before analytics run on them.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the warehouse exports (fails on missing columns).",
	Long: `Validate both CSV exports against the dimensions and measures the
analytics engines require, and report missing values per measure.

Fails with a non-zero exit code when required columns are absent, which
makes it suitable as a pipeline gate before scheduled KPI runs.

Examples:
  # Validate the default exports
  mirador check

  # Validate custom export files
  mirador check --projects proyectos.csv --quality calidad.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg); err != nil {
			contract.LogFatal("Dataset check failed", err)
		}
	},
}
