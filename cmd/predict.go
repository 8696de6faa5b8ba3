package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/miradorhq/mirador/core"
	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/schema"
)

// predictCmd runs the Rayleigh defect prediction.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict defect discovery over time with a Rayleigh model.",
	Long: `Predict how many defects a new project will produce and when they
will be discovered, using a Rayleigh distribution calibrated on industry
averages and the historical quality data.

The model estimates:
- Total defects from size, team, experience and complexity factors
- The discovery peak, landing near 40% of the project duration
- A severity split across Critical, High, Medium and Low
- QA staffing, total test hours and a risk classification

Examples:
  # Predict for a 50K LOC, 6 month, 8 person project
  mirador predict --size 50000 --months 6 --team 8

  # Senior team on a highly complex build
  mirador predict --size 120000 --months 9 --team 12 --experience Senior --complexity "Muy Alta"

  # Write the day-by-day curve for plotting
  mirador predict --size 50000 --months 6 --team 8 --curve-file curve.csv

  # Narrower confidence bands
  mirador predict --size 50000 --months 6 --team 8 --confidence 0.80`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		params := schema.PredictionParams{
			Size:           viper.GetInt("size"),
			DurationMonths: viper.GetInt("months"),
			TeamSize:       viper.GetInt("team"),
			Experience:     schema.ExperienceLevel(viper.GetString("experience")),
			Complexity:     schema.ComplexityLevel(viper.GetString("complexity")),
		}
		sigma := viper.GetFloat64("sigma")
		curveFile := viper.GetString("curve-file")

		if err := core.ExecutePredict(rootCtx, cfg, params, sigma, curveFile); err != nil {
			contract.LogFatal("Cannot run prediction", err)
		}
	},
}
