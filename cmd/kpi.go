package cmd

import (
	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/core"
	"github.com/miradorhq/mirador/internal/contract"
)

// kpiCmd computes the portfolio KPIs.
var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Compute the portfolio KPIs from the warehouse exports.",
	Long: `Compute the six portfolio KPIs from the project and quality CSV exports.

KPIs covered:
- Completion rate - share of projects with positive net profit
- Budget efficiency - average return on total cost
- Team utilization - share of projects with recorded activity
- Defect density - defects found per project
- Average resolution time - weighted by defect severity
- Client satisfaction - composite of budget and quality signals

Each KPI carries a health status (Healthy, Warning, Critical) derived from
its thresholds, plus the supporting metrics behind the headline number.

Examples:
  # Compute KPIs from the default exports
  mirador kpi

  # Use custom export files
  mirador kpi --projects proyectos.csv --quality calidad.csv

  # Record this computation to the snapshot store
  mirador kpi --record

  # Export as JSON for downstream tooling
  mirador kpi --output json --output-file kpis.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteKPIs(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot compute KPIs", err)
		}
	},
}
