package scorecard

import (
	"fmt"

	"github.com/miradorhq/mirador/schema"
)

var perspectiveIcons = map[schema.Perspective]string{
	schema.PerspectiveFinancial: "💰",
	schema.PerspectiveCustomer:  "👥",
	schema.PerspectiveInternal:  "⚙️",
	schema.PerspectiveLearning:  "📚",
}

// PerspectiveIcon returns the display icon for a perspective.
func PerspectiveIcon(perspective schema.Perspective) string {
	if icon, ok := perspectiveIcons[perspective]; ok {
		return icon
	}
	return "📊"
}

// FormatTable flattens OKRs into one row per key result for table output.
func FormatTable(okrs []schema.Objective) []schema.OKRRow {
	var rows []schema.OKRRow
	for _, okr := range okrs {
		for _, kr := range okr.KeyResults {
			rows = append(rows, schema.OKRRow{
				Perspective: okr.Perspective,
				Objective:   okr.Objective,
				KeyResult:   kr.KR,
				Target:      kr.Target,
				Current:     kr.Current,
				Unit:        kr.Unit,
				Progress:    fmt.Sprintf("%.0f%%", kr.Progress()),
				Status:      kr.Status(),
				Owner:       okr.Owner,
			})
		}
	}
	return rows
}
