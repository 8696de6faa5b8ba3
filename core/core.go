// Package core has the orchestration logic that ties the dataset,
// analytics engines and output writers together.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miradorhq/mirador/core/kpi"
	"github.com/miradorhq/mirador/core/olap"
	"github.com/miradorhq/mirador/core/rayleigh"
	"github.com/miradorhq/mirador/core/scorecard"
	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/internal/dataset"
	"github.com/miradorhq/mirador/internal/outwriter"
	"github.com/miradorhq/mirador/schema"
)

// ExecuteKPIs computes the portfolio KPIs and prints them to stdout.
// It serves as the main entry point for the 'kpi' command.
func ExecuteKPIs(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	snap, err := dataset.Load(cfg.ProjectsFile, cfg.QualityFile)
	if err != nil {
		return err
	}

	results := kpi.AllKPIs(snap.Projects, snap.Quality)

	if cfg.Record {
		if err := recordSnapshot(mgr, cfg, results); err != nil {
			return err
		}
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteKPIs(results, cfg, time.Since(start))
}

// recordSnapshot persists one KPI computation to the snapshot store.
func recordSnapshot(mgr contract.StoreManager, cfg *contract.Config, results map[schema.KPIKind]schema.KPIResult) error {
	store := mgr.GetSnapshotStore()

	params := map[string]any{
		"projects": cfg.ProjectsFile,
		"quality":  cfg.QualityFile,
	}
	runID, err := store.BeginRun(time.Now(), cfg.Quarter, params)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot run: %w", err)
	}

	for _, kind := range schema.AllKPIKinds {
		if err := store.RecordKPI(runID, results[kind]); err != nil {
			return fmt.Errorf("failed to record %s: %w", kind, err)
		}
	}

	if err := store.EndRun(runID, len(results)); err != nil {
		return fmt.Errorf("failed to end snapshot run: %w", err)
	}
	return nil
}

// ExecuteOKRs generates the Balanced Scorecard and prints it to stdout.
// It serves as the main entry point for the 'okr' command.
func ExecuteOKRs(_ context.Context, cfg *contract.Config) error {
	start := time.Now()

	snap, err := dataset.Load(cfg.ProjectsFile, cfg.QualityFile)
	if err != nil {
		return err
	}

	okrs := scorecard.GenerateAll(snap.Projects, snap.Quality, cfg.Quarter)

	ow := outwriter.NewOutWriter()
	return ow.WriteOKRs(okrs, cfg, time.Since(start))
}

// ExecutePredict runs the Rayleigh defect prediction and prints the report.
// A sigma of 0 derives the scale parameter from the duration. When curveFile
// is set, the dense day-by-day curve is also written as CSV.
func ExecutePredict(_ context.Context, cfg *contract.Config, params schema.PredictionParams, sigma float64, curveFile string) error {
	start := time.Now()

	if ok, msg := rayleigh.ValidateInputs(params.Size, params.DurationMonths, params.TeamSize); !ok {
		return fmt.Errorf("%s", msg)
	}

	// The historical dataset only informs the confidence panel. Prediction
	// works without it.
	var confidence schema.Confidence
	if snap, err := dataset.Load(cfg.ProjectsFile, cfg.QualityFile); err == nil {
		confidence = rayleigh.ModelConfidence(snap.Quality, snap.Projects)
	} else {
		confidence = rayleigh.ModelConfidence(nil, nil)
	}

	prediction := rayleigh.PredictDefects(params, sigma)
	recommendation := rayleigh.RecommendQAResources(prediction.TotalDefects, params.DurationMonths)

	ow := outwriter.NewOutWriter()
	if curveFile != "" {
		curve := rayleigh.GenerateCurve(prediction.TotalDefects, prediction.DurationDays, prediction.Sigma, cfg.Confidence)
		if err := ow.WriteCurveCSV(curve, curveFile); err != nil {
			return err
		}
	}

	return ow.WritePrediction(prediction, recommendation, confidence, cfg, time.Since(start))
}

// ExecuteTrend computes a metric trend from a CSV export and prints it.
// It serves as the main entry point for the 'trend' command.
func ExecuteTrend(_ context.Context, cfg *contract.Config) error {
	start := time.Now()

	if cfg.TrendSource == "" {
		return fmt.Errorf("--source is required")
	}
	if cfg.TrendTimeColumn == "" {
		return fmt.Errorf("--time-column is required")
	}
	if cfg.TrendMetric == "" {
		return fmt.Errorf("--metric is required")
	}

	table, err := dataset.LoadTable(cfg.TrendSource)
	if err != nil {
		return err
	}

	result := olap.MetricTrend(table, cfg.TrendTimeColumn, cfg.TrendMetric, cfg.TrendPeriods)

	ow := outwriter.NewOutWriter()
	return ow.WriteTrend(result, cfg.TrendMetric, cfg, time.Since(start))
}

// Cube requirements for the two warehouse exports.
var (
	projectDimensions = []string{"nombre_proyecto", "nombre_cliente", "nombre_pais"}
	projectMeasures   = []string{"ganancia_neta", "costo_total_real"}
	qualityDimensions = []string{"nombre_proyecto", "severidad"}
	qualityMeasures   = []string{"cantidad_defectos_encontrados"}
)

// ExecuteCheck validates both dataset cubes and fails when required columns
// are missing. It serves as the main entry point for the 'check' command.
func ExecuteCheck(_ context.Context, cfg *contract.Config) error {
	// Read the files generically so validation reports missing columns
	// instead of failing on load.
	projectsTable, err := dataset.LoadTable(cfg.ProjectsFile)
	if err != nil {
		return err
	}
	qualityTable, err := dataset.LoadTable(cfg.QualityFile)
	if err != nil {
		return err
	}

	checks := []struct {
		name       string
		validation olap.CubeValidation
	}{
		{cfg.ProjectsFile, olap.ValidateCube(projectsTable, projectDimensions, projectMeasures)},
		{cfg.QualityFile, olap.ValidateCube(qualityTable, qualityDimensions, qualityMeasures)},
	}

	var failures []string
	for _, check := range checks {
		v := check.validation
		if v.Valid {
			fmt.Printf("✅ %s: %d rows, %d columns\n", check.name, v.RowCount, v.ColumnCount)
		} else {
			fmt.Printf("❌ %s: missing dimensions %v, missing measures %v\n",
				check.name, v.MissingDimensions, v.MissingMeasures)
			failures = append(failures, check.name)
		}
		for col, nulls := range v.NullCounts {
			if nulls > 0 {
				fmt.Printf("⚠️  %s: column %s has %d missing values\n", check.name, col, nulls)
			}
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("cube validation failed for: %s", strings.Join(failures, ", "))
	}
	return nil
}
