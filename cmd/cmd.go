// Package cmd defines the command-line interface for mirador.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/internal/dataset"
	"github.com/miradorhq/mirador/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(kpiCmd)
	rootCmd.AddCommand(okrCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(snapshotCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotStatusCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("projects", "p", dataset.DefaultProjectsFile, "Path to the projects CSV export")
	rootCmd.PersistentFlags().StringP("quality", "q", dataset.DefaultQualityFile, "Path to the quality CSV export")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("quarter", contract.DefaultQuarter, "Reporting quarter label (e.g. 'Q1 2025')")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.SQLiteBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of kpiCmd to Viper
	kpiCmd.Flags().Bool("record", false, "Record the computed KPIs to the snapshot store")
	if err := viper.BindPFlags(kpiCmd.Flags()); err != nil {
		contract.LogFatal("Error binding kpi flags", err)
	}

	// Bind all flags of predictCmd to Viper
	predictCmd.Flags().Int("size", 0, "Project size in lines of code")
	predictCmd.Flags().Int("months", 0, "Project duration in months")
	predictCmd.Flags().Int("team", 0, "Team size in engineers")
	predictCmd.Flags().String("experience", string(schema.ExperienceMid), "Team experience level: Junior or Mid or Senior")
	predictCmd.Flags().String("complexity", string(schema.ComplexityMedium), "Project complexity: Baja, Media, Alta, Muy Alta")
	predictCmd.Flags().Float64("sigma", 0, "Custom Rayleigh scale parameter (0 = derive from duration)")
	predictCmd.Flags().Float64("confidence", contract.DefaultConfidence, "Confidence level for the prediction bands (0.50-0.99)")
	predictCmd.Flags().String("curve-file", "", "Optional CSV path for the day-by-day discovery curve")
	if err := viper.BindPFlags(predictCmd.Flags()); err != nil {
		contract.LogFatal("Error binding predict flags", err)
	}

	// Bind all flags of trendCmd to Viper
	trendCmd.Flags().String("source", "", "Path to the CSV export holding the metric")
	trendCmd.Flags().String("time-column", "", "Column used for time bucketing")
	trendCmd.Flags().String("metric", "", "Numeric column to aggregate per bucket")
	trendCmd.Flags().Int("periods", contract.DefaultPeriods, "Number of trailing buckets to keep")
	if err := viper.BindPFlags(trendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trend flags", err)
	}

	// Bind all flags of snapshotListCmd to Viper
	snapshotListCmd.Flags().Int("limit", 10, "Number of snapshot runs to list (0 = all)")
	if err := viper.BindPFlags(snapshotListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot list flags", err)
	}

	// Bind all flags of snapshotMigrateCmd to Viper
	snapshotMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(snapshotMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot migrate flags", err)
	}
}
