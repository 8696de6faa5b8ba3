package cmd

import (
	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/core"
	"github.com/miradorhq/mirador/internal/contract"
)

// trendCmd computes a metric trend over time buckets.
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compute the trend of a metric column over time buckets.",
	Long: `Aggregate a numeric metric per time bucket in any CSV export and
classify its direction over the trailing periods.

Direction is up when the first-to-last change exceeds +5%, down below
-5%, and flat otherwise. The summary includes min, max and average of
the kept values.

Examples:
  # Net profit per quarter, last 4 buckets
  mirador trend --source OLAP_Proyectos.csv --time-column trimestre --metric ganancia_neta

  # Defect counts per month, last 6 buckets
  mirador trend --source OLAP_Calidad.csv --time-column mes --metric cantidad_defectos_encontrados --periods 6

  # Export the bucket values as CSV
  mirador trend --source data.csv --time-column quarter --metric revenue --output csv --output-file trend.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrend(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute trend", err)
		}
	},
}
