package kpi

import (
	"testing"

	"github.com/miradorhq/mirador/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []schema.ProjectRecord {
	return []schema.ProjectRecord{
		{Name: "alpha", Client: "acme", NetProfit: 100, TotalCost: 80, Country: "China"},
		{Name: "beta", Client: "acme", NetProfit: -5, TotalCost: 50, Country: "Peru"},
		{Name: "gamma", Client: "globex", NetProfit: 40, TotalCost: 0, Country: "Chile"},
		{Name: "delta", Client: "initech", NetProfit: 0, TotalCost: 0, Country: "Chile"},
	}
}

func sampleQuality() []schema.QualityRecord {
	return []schema.QualityRecord{
		{Project: "alpha", Severity: schema.SeverityCritical, DefectCount: 2},
		{Project: "alpha", Severity: schema.SeverityMedium, DefectCount: 6},
		{Project: "beta", Severity: schema.SeverityLow, DefectCount: 4},
	}
}

func TestCompletionRate(t *testing.T) {
	r := CompletionRate(sampleProjects())
	assert.InDelta(t, 50.0, r.Value, 1e-9) // alpha and gamma completed
	assert.Equal(t, schema.StatusWarning, r.Status)
	assert.Equal(t, 2, r.Meta["completed"])
	assert.Equal(t, 4, r.Meta["total"])
	assert.Equal(t, 2, r.Meta["in_progress"])
}

func TestCompletionRateSpecScenario(t *testing.T) {
	// Two projects, one profitable: rate is exactly 50%.
	projects := []schema.ProjectRecord{
		{Name: "p1", NetProfit: 100, TotalCost: 80},
		{Name: "p2", NetProfit: -5, TotalCost: 50},
	}
	r := CompletionRate(projects)
	assert.InDelta(t, 50.0, r.Value, 1e-9)
	assert.Equal(t, 1, r.Meta["completed"])
	assert.Equal(t, 2, r.Meta["total"])
}

func TestCompletionRateEmpty(t *testing.T) {
	r := CompletionRate(nil)
	assert.Zero(t, r.Value)
	assert.Equal(t, schema.StatusNoData, r.Status)
}

func TestBudgetEfficiency(t *testing.T) {
	r := BudgetEfficiency(sampleProjects())
	// ROI: alpha 125%, beta -10%; gamma/delta excluded (zero cost).
	assert.InDelta(t, 57.5, r.Value, 0.01)
	assert.Equal(t, schema.StatusHealthy, r.Status)
	assert.InDelta(t, 125.0, r.Meta["best_roi"].(float64), 0.01)
	assert.InDelta(t, -10.0, r.Meta["worst_roi"].(float64), 0.01)
	assert.Equal(t, 2, r.Meta["projects_analyzed"])
}

func TestBudgetEfficiencyNoValidCosts(t *testing.T) {
	r := BudgetEfficiency([]schema.ProjectRecord{{Name: "x", NetProfit: 10}})
	assert.Zero(t, r.Value)
	assert.Equal(t, schema.StatusNoData, r.Status)
}

func TestTeamUtilization(t *testing.T) {
	r := TeamUtilization(sampleProjects())
	assert.InDelta(t, 75.0, r.Value, 1e-9) // delta is idle
	assert.Equal(t, schema.StatusHealthy, r.Status)
	assert.Equal(t, 3, r.Meta["active_projects"])
	assert.Equal(t, 1, r.Meta["idle_projects"])
	assert.Equal(t, 3, r.Meta["unique_clients"])
}

func TestDefectDensity(t *testing.T) {
	r := DefectDensity(sampleQuality(), sampleProjects())
	assert.InDelta(t, 3.0, r.Value, 1e-9) // 12 defects / 4 projects
	assert.Equal(t, schema.StatusHealthy, r.Status)
	assert.Equal(t, 12, r.Meta["total_defects"])
	assert.Equal(t, 4, r.Meta["total_projects"])

	breakdown := r.Meta["severity_breakdown"].(map[schema.Severity]int)
	assert.Equal(t, 2, breakdown[schema.SeverityCritical])
	assert.Equal(t, 6, breakdown[schema.SeverityMedium])
	assert.Equal(t, 4, breakdown[schema.SeverityLow])
}

func TestDefectDensityZeroDefects(t *testing.T) {
	// Zero total defects across five projects is healthy, not "No data".
	quality := []schema.QualityRecord{
		{Project: "a", Severity: schema.SeverityNone, DefectCount: 0},
	}
	projects := make([]schema.ProjectRecord, 5)
	for i := range projects {
		projects[i] = schema.ProjectRecord{Name: string(rune('a' + i))}
	}
	r := DefectDensity(quality, projects)
	assert.Zero(t, r.Value)
	assert.Equal(t, schema.StatusHealthy, r.Status)
}

func TestAvgResolutionTime(t *testing.T) {
	r := AvgResolutionTime(sampleQuality())
	// Weighted: (2*7 + 6*2 + 4*1) / 12 = 2.5 days.
	assert.InDelta(t, 2.5, r.Value, 1e-9)
	assert.Equal(t, schema.StatusHealthy, r.Status)
	assert.Equal(t, 12, r.Meta["total_defects"])

	bySeverity := r.Meta["resolution_by_severity"].(map[schema.Severity]map[string]any)
	require.Contains(t, bySeverity, schema.SeverityCritical)
	assert.Equal(t, 2, bySeverity[schema.SeverityCritical]["count"])
	assert.NotContains(t, bySeverity, schema.SeverityHigh)
}

func TestAvgResolutionTimeUnknownSeverityDefaults(t *testing.T) {
	quality := []schema.QualityRecord{
		{Project: "a", Severity: "desconocida", DefectCount: 3},
	}
	r := AvgResolutionTime(quality)
	assert.InDelta(t, 2.0, r.Value, 1e-9)
}

func TestAvgResolutionTimeEmpty(t *testing.T) {
	r := AvgResolutionTime(nil)
	assert.Zero(t, r.Value)
	assert.Equal(t, schema.StatusNoData, r.Status)
}

func TestClientSatisfaction(t *testing.T) {
	r := ClientSatisfaction(sampleProjects(), sampleQuality())
	// budgetScore = min(57.5*2, 100) = 100; qualityScore = 100 - 3*2 = 94.
	// index = 100*0.4 + 94*0.6 = 96.4
	assert.InDelta(t, 96.4, r.Value, 0.01)
	assert.Equal(t, schema.StatusHealthy, r.Status)
	assert.InDelta(t, 100.0, r.Meta["budget_component"].(float64), 0.01)
	assert.InDelta(t, 94.0, r.Meta["quality_component"].(float64), 0.01)
}

func TestClientSatisfactionNoQualityRows(t *testing.T) {
	// Quality collection empty: quality score degrades to 100, budget
	// component still computed from projects.
	projects := []schema.ProjectRecord{
		{Name: "p1", NetProfit: 100, TotalCost: 80},
		{Name: "p2", NetProfit: -5, TotalCost: 50},
	}
	r := ClientSatisfaction(projects, nil)
	// mean ROI = (125 + -10) / 2 = 57.5 -> budgetScore 100; index = 100.
	assert.InDelta(t, 100.0, r.Value, 0.01)
	assert.Equal(t, schema.StatusHealthy, r.Status)
}

func TestClientSatisfactionEmpty(t *testing.T) {
	r := ClientSatisfaction(nil, nil)
	assert.Zero(t, r.Value)
	assert.Equal(t, schema.StatusNoData, r.Status)
}

func TestAllKPIs(t *testing.T) {
	all := AllKPIs(sampleProjects(), sampleQuality())
	require.Len(t, all, 6)
	for _, kind := range schema.AllKPIKinds {
		require.Contains(t, all, kind)
		assert.Equal(t, kind, all[kind].Kind)
		assert.NotEmpty(t, all[kind].Unit)
	}
	assert.InDelta(t, 50.0, all[schema.KPICompletionRate].Value, 1e-9)
}

func TestColor(t *testing.T) {
	tests := []struct {
		kind  schema.KPIKind
		value float64
		want  string
	}{
		{schema.KPICompletionRate, 85, ColorGreen},
		{schema.KPICompletionRate, 60, ColorYellow},
		{schema.KPICompletionRate, 20, ColorRed},
		{schema.KPIDefectDensity, 5, ColorGreen},   // inverse: low is good
		{schema.KPIDefectDensity, 20, ColorYellow},
		{schema.KPIDefectDensity, 40, ColorRed},
		{schema.KPIAvgResolutionTime, 2, ColorGreen},
		{schema.KPIAvgResolutionTime, 8, ColorRed},
		{schema.KPIKind("bogus"), 99, ColorGray},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Color(tt.value, tt.kind), "%s=%v", tt.kind, tt.value)
	}
}

func TestFormatDisplay(t *testing.T) {
	d := FormatDisplay(CompletionRate(sampleProjects()))
	assert.Equal(t, "Completion Rate", d.Name)
	assert.Equal(t, "50.0%", d.DisplayValue)
	assert.Equal(t, ColorYellow, d.Color)

	d = FormatDisplay(AvgResolutionTime(sampleQuality()))
	assert.Equal(t, "Avg Resolution Time", d.Name)
	assert.Equal(t, "2.5 days", d.DisplayValue)
}
