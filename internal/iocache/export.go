package iocache

import (
	"errors"
	"fmt"

	"github.com/miradorhq/mirador/internal/parquet"
)

// ExecuteSnapshotExport performs the actual export of snapshot data to Parquet files.
func ExecuteSnapshotExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the snapshot store
	store := Manager.GetSnapshotStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no snapshot data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshot runs: %d\n", status.TotalRuns)
	fmt.Printf("Total KPI values: %d\n", status.TotalValues)

	// Retrieve all snapshot runs with their values
	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertKPIRuns(runs)
	parquetValues := parquet.ConvertKPIValues(runs)

	// Write snapshot runs to Parquet
	runsFile := outputFile + ".kpi_runs.parquet"
	if err := parquet.WriteKPIRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	fmt.Printf("Exported %d snapshot runs to: %s\n", len(parquetRuns), runsFile)

	// Write KPI values to Parquet
	valuesFile := outputFile + ".kpi_values.parquet"
	if err := parquet.WriteKPIValuesParquet(parquetValues, valuesFile); err != nil {
		return fmt.Errorf("failed to write KPI values: %w", err)
	}
	fmt.Printf("Exported %d KPI values to: %s\n", len(parquetValues), valuesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
