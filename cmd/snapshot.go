package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/internal/iocache"
	"github.com/miradorhq/mirador/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need store access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := iocache.InitStores(backend, connStr); err != nil {
		return err
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func snapshotMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("snapshot-backend")
	connStr := viper.GetString("snapshot-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetSnapshotDBFilePath()
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotMigrateSetupWrapper wraps snapshotMigrateSetup to provide PreRunE for migrate command.
func snapshotMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotMigrateSetup()
}

// snapshotCmd focused on snapshot data management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup)
// instead of the full sharedSetup used by the analytics commands. This avoids
// dataset validation for simple store operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage recorded KPI snapshots and exports",
	Long: `Manage the historical KPI snapshots recorded with 'mirador kpi --record'.

Every recorded run stores:
- Run metadata (timestamp, quarter, input files)
- All six KPI values with status and supporting metrics

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show snapshot store statistics
  list    - List recent snapshot runs
  export  - Export data to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check snapshot store status
  mirador snapshot status

  # Export for analysis in pandas/DuckDB
  mirador snapshot export --output-file kpi-data.parquet`,
}

// snapshotStatusCmd shows snapshot store status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot store statistics and connection details",
	Long: `Show detailed information about the snapshot store.

Displays:
- Backend type and storage location
- Total number of recorded runs and KPI values
- Timestamp of the most recent run
- Database size (SQLite only)

Examples:
  # Check snapshot store status
  mirador snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		iocache.PrintSnapshotStatus(status)
	},
}

// snapshotListCmd lists recent snapshot runs.
var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent snapshot runs with their KPI values",
	Long: `List the most recent snapshot runs, newest first, with the KPI
values each run captured.

Examples:
  # List the last 10 runs
  mirador snapshot list

  # List everything
  mirador snapshot list --limit 0`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		limit := viper.GetInt("limit")
		runs, err := iocache.Manager.GetSnapshotStore().ListRuns(limit)
		if err != nil {
			contract.LogFatal("Failed to list snapshot runs", err)
		}
		if len(runs) == 0 {
			fmt.Println("No snapshot runs recorded yet. Run 'mirador kpi --record' first.")
			return
		}
		for _, run := range runs {
			fmt.Printf("Run %d · %s · %s\n", run.ID, run.Quarter, run.RecordedAt.Format("2006-01-02 15:04:05"))
			for _, v := range run.Values {
				fmt.Printf("  %-22s %10.1f %-16s %s\n", v.Kind, v.Value, v.Unit, v.Status)
			}
		}
	},
}

// snapshotExportCmd exports snapshot data to Parquet files.
var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded snapshots to Parquet for BI tools and analytics",
	Long: `Export all recorded snapshot data to Parquet format for use with
analytics tools.

Exports two datasets:
- KPI runs - metadata about each recorded computation
- KPI values - the individual KPI values per run

Requires: --output-file parameter

Examples:
  # Export all data
  mirador snapshot export --output-file kpi-data.parquet

  # Use with DuckDB for analysis
  mirador snapshot export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.kpi_values.parquet') LIMIT 10"`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteSnapshotExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export snapshot data", err)
		}
	},
}

// snapshotMigrateCmd runs database migrations for the snapshot store.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the snapshot store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  mirador snapshot migrate

  # Migrate to specific version
  mirador snapshot migrate --target-version 1

  # Rollback to previous version
  mirador snapshot migrate --target-version 0`,
	PreRunE: snapshotMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateSnapshots(cfg.SnapshotBackend, cfg.SnapshotDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
