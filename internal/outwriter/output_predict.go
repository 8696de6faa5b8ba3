package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/schema"
)

// Severity display order for the distribution table.
var severityOrder = []string{"Crítica", "Alta", "Media", "Baja"}

// predictRenderModel bundles the prediction views.
type predictRenderModel struct {
	Prediction     schema.Prediction     `json:"prediction"`
	Recommendation schema.Recommendation `json:"recommendation"`
	Confidence     schema.Confidence     `json:"confidence"`
}

// WritePrediction prints the defect prediction, dispatching based on the output format configured.
func (ow *OutWriter) WritePrediction(prediction schema.Prediction, rec schema.Recommendation, conf schema.Confidence, cfg *contract.Config, duration time.Duration) error {
	model := &predictRenderModel{Prediction: prediction, Recommendation: rec, Confidence: conf}
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionCSV(w, model, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionText(w, model, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// WriteCurveCSV writes the day-by-day discovery curve as CSV, typically to a file.
func (ow *OutWriter) WriteCurveCSV(curve schema.Curve, outputFile string) error {
	return writeWithFile(outputFile, func(w io.Writer) error {
		header := []string{"day", "defects_per_day", "cumulative_defects", "upper_bound", "lower_bound"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, pt := range curve.Points {
				record := []string{
					strconv.Itoa(pt.Day),
					fmt.Sprintf("%.4f", pt.DefectsPerDay),
					fmt.Sprintf("%.4f", pt.Cumulative),
					fmt.Sprintf("%.4f", pt.UpperBound),
					fmt.Sprintf("%.4f", pt.LowerBound),
				}
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	}, "Wrote curve CSV")
}

// writePredictionCSV writes the headline prediction figures in CSV format.
func writePredictionCSV(w io.Writer, model *predictRenderModel, fmtFloat func(float64) string) error {
	header := []string{"metric", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rows := [][]string{
			{"total_defects", fmtFloat(model.Prediction.TotalDefects)},
			{"peak_day", fmtFloat(model.Prediction.PeakDay)},
			{"peak_defects_per_day", fmtFloat(model.Prediction.PeakDefectsPerDay)},
			{"duration_days", strconv.Itoa(model.Prediction.DurationDays)},
			{"qa_engineers", strconv.Itoa(model.Recommendation.QAEngineers)},
			{"qa_hours_total", fmtFloat(model.Recommendation.QAHoursTotal)},
			{"risk_level", string(model.Recommendation.RiskLevel)},
			{"confidence_score", fmt.Sprintf("%.2f", model.Confidence.Score)},
			{"confidence_label", model.Confidence.Label},
		}
		for _, s := range severityOrder {
			rows = append(rows, []string{"severity_" + s, fmtFloat(model.Prediction.SeverityDistribution[s])})
		}
		for _, record := range rows {
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writePredictionText writes the human-readable prediction report.
func writePredictionText(w io.Writer, model *predictRenderModel, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	p := model.Prediction
	if _, err := fmt.Fprintf(w, "Defect Prediction · %d LOC, %d months, %d developers (%s, %s)\n\n",
		p.Params.Size, p.Params.DurationMonths, p.Params.TeamSize, p.Params.Experience, p.Params.Complexity); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total defects:   %s\n", fmtFloat(p.TotalDefects)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Peak day:        %s of %d\n", fmtFloat(p.PeakDay), p.DurationDays); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Peak rate:       %s defects/day\n\n", fmtFloat(p.PeakDefectsPerDay)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Severity", "Expected Defects"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, s := range severityOrder {
		data = append(data, []string{s, fmtFloat(p.SeverityDistribution[s])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	risk := string(model.Recommendation.RiskLevel)
	if cfg.UseColors {
		risk = contract.RiskColorLabel(model.Recommendation.RiskLevel)
	}
	if _, err := fmt.Fprintf(w, "\nRisk level: %s\n", risk); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", model.Recommendation.Recommendation); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", model.Confidence.Message); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nPredicted in %s\n", duration.Round(time.Millisecond))
	return err
}
