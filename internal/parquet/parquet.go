// Package parquet provides data structures and functions for exporting KPI
// snapshot data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/miradorhq/mirador/schema"
	"github.com/parquet-go/parquet-go"
)

// KPIRun represents a single KPI snapshot run with metadata.
// This struct maps to the mirador_kpi_runs database table.
type KPIRun struct {
	// RunID is the unique identifier for this snapshot run
	RunID int64 `parquet:"run_id,snappy"`

	// RecordedAt is when the snapshot was taken (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// Quarter is the reporting quarter the snapshot was computed for
	Quarter string `parquet:"quarter,snappy"`

	// TotalValues is the number of KPI values captured in this run
	TotalValues int32 `parquet:"total_values,snappy"`
}

// KPIValue represents one computed KPI value within a snapshot run.
// This struct maps to the mirador_kpi_values database table.
type KPIValue struct {
	// RunID references the parent snapshot run
	RunID int64 `parquet:"run_id,snappy"`

	// Kind identifies which KPI this value belongs to
	Kind string `parquet:"kpi_kind,snappy"`

	// Value is the computed KPI value
	Value float64 `parquet:"kpi_value,snappy"`

	// Unit is the measurement unit for the value
	Unit string `parquet:"unit,snappy"`

	// Status is the health status derived from the value
	Status string `parquet:"status,snappy"`

	// Meta contains the JSON-encoded supporting metrics (nullable)
	Meta *string `parquet:"meta,optional,snappy"`
}

// WriteKPIRunsParquet writes a slice of KPIRun structs to a Parquet file.
func WriteKPIRunsParquet(data []KPIRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the KPIRun struct tags
	writer := parquet.NewGenericWriter[KPIRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteKPIValuesParquet writes a slice of KPIValue structs to a Parquet file.
func WriteKPIValuesParquet(data []KPIValue, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the KPIValue struct tags
	writer := parquet.NewGenericWriter[KPIValue](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertKPIRuns converts schema.SnapshotRun to KPIRun for Parquet export.
func ConvertKPIRuns(runs []schema.SnapshotRun) []KPIRun {
	result := make([]KPIRun, len(runs))
	for i, run := range runs {
		result[i] = KPIRun{
			RunID:       run.ID,
			RecordedAt:  run.RecordedAt,
			Quarter:     run.Quarter,
			TotalValues: int32(len(run.Values)),
		}
	}
	return result
}

// ConvertKPIValues flattens the KPI values of snapshot runs for Parquet export.
func ConvertKPIValues(runs []schema.SnapshotRun) []KPIValue {
	var result []KPIValue
	for _, run := range runs {
		for _, value := range run.Values {
			row := KPIValue{
				RunID:  run.ID,
				Kind:   string(value.Kind),
				Value:  value.Value,
				Unit:   value.Unit,
				Status: string(value.Status),
			}
			if len(value.Meta) > 0 {
				if metaJSON, err := json.Marshal(value.Meta); err == nil {
					meta := string(metaJSON)
					row.Meta = &meta
				}
			}
			result = append(result, row)
		}
	}
	return result
}
