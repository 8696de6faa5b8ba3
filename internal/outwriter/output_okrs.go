package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/miradorhq/mirador/core/scorecard"
	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/schema"
)

// okrRenderModel bundles everything the OKR views need.
type okrRenderModel struct {
	Quarter   string                      `json:"quarter"`
	Summaries []schema.PerspectiveSummary `json:"perspectives"`
	OKRs      []schema.OKRRow             `json:"okrs"`
	Hierarchy schema.HierarchyNode        `json:"hierarchy"`
}

// WriteOKRs prints the Balanced Scorecard, dispatching based on the output format configured.
func (ow *OutWriter) WriteOKRs(okrs []schema.Objective, cfg *contract.Config, duration time.Duration) error {
	model := &okrRenderModel{
		Quarter:   cfg.Quarter,
		Summaries: scorecard.Summaries(okrs),
		OKRs:      scorecard.FormatTable(okrs),
		Hierarchy: scorecard.BuildHierarchy(okrs),
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOKRsCSV(w, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOKRsText(w, model, cfg, duration)
		}, "Wrote table")
	}
}

// writeOKRsCSV writes one row per key result in CSV format.
func writeOKRsCSV(w io.Writer, model *okrRenderModel) error {
	header := []string{"perspective", "objective", "key_result", "target", "current", "progress", "status", "owner"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range model.OKRs {
			record := []string{
				string(row.Perspective),
				row.Objective,
				row.KeyResult,
				fmt.Sprintf("%g", row.Target),
				fmt.Sprintf("%g", row.Current),
				row.Progress,
				string(row.Status),
				row.Owner,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeOKRsText writes the perspective summaries followed by the key result table.
func writeOKRsText(w io.Writer, model *okrRenderModel, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Balanced Scorecard · %s\n\n", model.Quarter); err != nil {
		return err
	}

	for _, s := range model.Summaries {
		status := string(s.Status)
		if cfg.UseColors {
			status = contract.StatusColorLabel(s.Status)
		}
		icon := scorecard.PerspectiveIcon(s.Perspective)
		if _, err := fmt.Fprintf(w, "%s %s: %.1f%% (%d OKRs, %d KRs) %s\n",
			icon, s.Perspective, s.Score, s.OKRCount, s.KRCount, status); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Perspective", "Key Result", "Target", "Current", "Progress", "Status", "Owner"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxText := getMaxTableTextWidth(cfg)
	var data [][]string
	for _, row := range model.OKRs {
		status := string(row.Status)
		if cfg.UseColors {
			status = contract.StatusColorLabel(row.Status)
		}
		data = append(data, []string{
			string(row.Perspective),
			contract.TruncateText(row.KeyResult, maxText),
			fmt.Sprintf("%g%s", row.Target, row.Unit),
			fmt.Sprintf("%.1f%s", row.Current, row.Unit),
			row.Progress,
			status,
			row.Owner,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nGenerated %d key results in %s\n", len(model.OKRs), duration.Round(time.Millisecond))
	return err
}
