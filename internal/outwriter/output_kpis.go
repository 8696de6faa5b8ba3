package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/miradorhq/mirador/core/kpi"
	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/schema"
)

// WriteKPIs prints computed KPI results, dispatching based on the output format configured.
func (ow *OutWriter) WriteKPIs(results map[schema.KPIKind]schema.KPIResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	// Fixed display order, independent of map iteration.
	displays := make([]schema.KPIDisplay, 0, len(results))
	for _, kind := range schema.AllKPIKinds {
		if r, ok := results[kind]; ok {
			displays = append(displays, kpi.FormatDisplay(r))
		}
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, displays)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeKPIsCSV(w, displays, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeKPIsTable(w, displays, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeKPIsCSV writes KPI rows in CSV format.
func writeKPIsCSV(w io.Writer, displays []schema.KPIDisplay, fmtFloat func(float64) string) error {
	header := []string{"kpi", "value", "unit", "status"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range displays {
			record := []string{d.Name, fmtFloat(d.Value), d.Unit, string(d.Status)}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeKPIsTable generates and writes the human-readable table.
func writeKPIsTable(w io.Writer, displays []schema.KPIDisplay, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"KPI", "Value", "Unit", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range displays {
		status := string(d.Status)
		if cfg.UseColors {
			status = contract.StatusColorLabel(d.Status)
		}
		data = append(data, []string{d.Name, fmtFloat(d.Value), d.Unit, status})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nComputed %d KPIs in %s\n", len(displays), duration.Round(time.Millisecond))
	return err
}
