package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/miradorhq/mirador/core/olap"
	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/schema"
)

// WriteTrend prints a metric trend, dispatching based on the output format configured.
func (ow *OutWriter) WriteTrend(result olap.TrendResult, metric string, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendText(w, result, metric, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeTrendCSV writes one row per period in CSV format.
func writeTrendCSV(w io.Writer, result olap.TrendResult, fmtFloat func(float64) string) error {
	header := []string{"period", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, v := range result.Values {
			record := []string{strconv.Itoa(i + 1), fmtFloat(v)}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeTrendText writes the human-readable trend summary.
func writeTrendText(w io.Writer, result olap.TrendResult, metric string, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Trend for %s: %s (%.1f%% change)\n\n", metric, result.Direction, result.ChangePct); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Period", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for i, v := range result.Values {
		data = append(data, []string{strconv.Itoa(i + 1), fmtFloat(v)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nMin %s · Max %s · Avg %s\n",
		fmtFloat(result.Min), fmtFloat(result.Max), fmtFloat(result.Avg)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Computed in %s\n", duration.Round(time.Millisecond))
	return err
}
