package kpi

import (
	"fmt"
	"strings"

	"github.com/miradorhq/mirador/schema"
)

// Gauge colors for KPI display.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
	ColorGray   = "gray"
)

// Color maps a KPI value to a gauge color using the same thresholds as the
// status derivation, honoring the lower-is-better direction of the inverse
// KPIs. Unknown kinds map to gray.
func Color(value float64, kind schema.KPIKind) string {
	threshold, ok := schema.GetKPIThresholds()[kind]
	if !ok {
		return ColorGray
	}

	if threshold.Inverse {
		switch {
		case value <= threshold.Green:
			return ColorGreen
		case value <= threshold.Yellow:
			return ColorYellow
		default:
			return ColorRed
		}
	}
	switch {
	case value >= threshold.Green:
		return ColorGreen
	case value >= threshold.Yellow:
		return ColorYellow
	default:
		return ColorRed
	}
}

// FormatDisplay prepares a KPI result for dashboard rendering: a titled
// name, the gauge color and a combined display string.
func FormatDisplay(r schema.KPIResult) schema.KPIDisplay {
	display := fmt.Sprintf("%.1f %s", r.Value, r.Unit)
	if r.Unit == "%" {
		display = fmt.Sprintf("%.1f%%", r.Value)
	}
	return schema.KPIDisplay{
		Name:         titleName(r.Kind),
		Value:        r.Value,
		Unit:         r.Unit,
		Color:        Color(r.Value, r.Kind),
		Status:       r.Status,
		Meta:         r.Meta,
		DisplayValue: display,
	}
}

// titleName turns "completion_rate" into "Completion Rate".
func titleName(kind schema.KPIKind) string {
	parts := strings.Split(string(kind), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
