package cmd

import (
	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/core"
	"github.com/miradorhq/mirador/internal/contract"
)

// okrCmd generates the Balanced Scorecard.
var okrCmd = &cobra.Command{
	Use:   "okr",
	Short: "Generate the Balanced Scorecard with OKRs per perspective.",
	Long: `Generate a Balanced Scorecard from the warehouse exports, with OKRs
grouped into the four classic perspectives:

- Financial - revenue, margin, market expansion
- Customer - satisfaction, retention, strategic accounts
- Internal Processes - quality, delivery, operational efficiency
- Learning & Growth - certifications, innovation, talent

Each objective holds its key results with targets and current values
computed from the data. Perspective scores aggregate objective progress
and classify it as On Track, At Risk or Off Track.

Examples:
  # Print the scorecard for the default quarter
  mirador okr

  # Scorecard for a specific quarter
  mirador okr --quarter "Q3 2025"

  # Export the full OKR table as CSV
  mirador okr --output csv --output-file okrs.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOKRs(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate scorecard", err)
		}
	},
}
