package rayleigh

import (
	"fmt"
	"strings"
	"testing"

	"github.com/miradorhq/mirador/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateBaseDefects(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		team       int
		experience schema.ExperienceLevel
		complexity schema.ComplexityLevel
		want       float64
	}{
		{"mid team medium complexity", 50_000, 5, schema.ExperienceMid, schema.ComplexityMedium, 1000},
		{"senior team low complexity", 50_000, 5, schema.ExperienceSenior, schema.ComplexityLow, 420},
		{"junior team very high complexity", 10_000, 5, schema.ExperienceJunior, schema.ComplexityVeryHigh, 540},
		{"team overhead above five", 50_000, 10, schema.ExperienceMid, schema.ComplexityMedium, 1250},
		{"unknown levels default to 1.0", 50_000, 5, "Mystery", "Rara", 1000},
		{"floor of one defect", 10, 1, schema.ExperienceSenior, schema.ComplexityLow, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateBaseDefects(tt.size, tt.team, tt.experience, tt.complexity)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPredictDefects(t *testing.T) {
	params := schema.PredictionParams{
		Size:           50_000,
		DurationMonths: 6,
		TeamSize:       8,
		Experience:     schema.ExperienceMid,
		Complexity:     schema.ComplexityHigh,
	}
	p := PredictDefects(params, 0)

	// 50 * 20 * 1.0 * 1.4 * 1.15 = 1610
	assert.InDelta(t, 1610.0, p.TotalDefects, 0.1)
	assert.Equal(t, 180, p.DurationDays)
	assert.InDelta(t, 72.0, p.Sigma, 1e-9)
	assert.InDelta(t, 72.0, p.PeakDay, 1e-9)
	assert.InDelta(t, p.TotalDefects*0.015, p.PeakDefectsPerDay, 0.3)
	assert.Equal(t, params, p.Params)

	dist := p.SeverityDistribution
	require.Len(t, dist, 4)
	assert.InDelta(t, 161.0, dist["Crítica"], 0.1)
	assert.InDelta(t, 402.5, dist["Alta"], 0.1)
	assert.InDelta(t, 644.0, dist["Media"], 0.1)
	assert.InDelta(t, 402.5, dist["Baja"], 0.1)
}

func TestPredictDefectsCustomSigma(t *testing.T) {
	params := schema.PredictionParams{Size: 10_000, DurationMonths: 4, TeamSize: 3,
		Experience: schema.ExperienceSenior, Complexity: schema.ComplexityMedium}
	p := PredictDefects(params, 55)
	assert.InDelta(t, 55.0, p.Sigma, 1e-9)
	assert.InDelta(t, 55.0, p.PeakDay, 1e-9)
}

func TestGenerateCurveIntegratesToTotal(t *testing.T) {
	curve := GenerateCurve(100, 180, 72, 0.95)
	require.Len(t, curve.Points, 180)

	// Trapezoidal integral of the renormalized series recovers the total.
	integral := 0.0
	for i := 1; i < len(curve.Points); i++ {
		integral += (curve.Points[i-1].DefectsPerDay + curve.Points[i].DefectsPerDay) / 2
	}
	assert.InDelta(t, 100.0, integral, 1e-6)

	assert.InDelta(t, 72.0, curve.PeakDay, 1e-9)
	assert.InDelta(t, 72.0, curve.Sigma, 1e-9)
	assert.Positive(t, curve.PeakValue)

	// The per-day maximum sits at the day nearest sigma.
	maxDay := 0
	for _, pt := range curve.Points {
		if pt.DefectsPerDay == curve.PeakValue {
			maxDay = pt.Day
			break
		}
	}
	assert.InDelta(t, 72, maxDay, 1.0)
}

func TestGenerateCurveBounds(t *testing.T) {
	curve := GenerateCurve(100, 120, 0, 0.95)
	assert.InDelta(t, 48.0, curve.Sigma, 1e-9) // derived from duration

	for _, pt := range curve.Points {
		assert.GreaterOrEqual(t, pt.UpperBound, pt.DefectsPerDay)
		assert.LessOrEqual(t, pt.LowerBound, pt.DefectsPerDay)
		assert.GreaterOrEqual(t, pt.LowerBound, 0.0)
	}

	// 95% confidence widens the band to ±30%.
	mid := curve.Points[48]
	assert.InDelta(t, mid.DefectsPerDay*1.3, mid.UpperBound, 1e-9)
	assert.InDelta(t, mid.DefectsPerDay*0.7, mid.LowerBound, 1e-9)

	narrow := GenerateCurve(100, 120, 0, 0.80)
	mid = narrow.Points[48]
	assert.InDelta(t, mid.DefectsPerDay*1.2, mid.UpperBound, 1e-9)
}

func TestGenerateCurveCumulativeMonotonic(t *testing.T) {
	curve := GenerateCurve(250, 90, 0, 0.8)
	prev := -1.0
	for _, pt := range curve.Points {
		assert.GreaterOrEqual(t, pt.Cumulative, prev)
		prev = pt.Cumulative
	}
}

func TestRecommendQAResources(t *testing.T) {
	rec := RecommendQAResources(120, 6)
	assert.Equal(t, 3, rec.QAEngineers) // 120/50 * 1.0, ceil
	assert.InDelta(t, 240.0, rec.QAHoursTotal, 1e-9)
	assert.InDelta(t, 40.0, rec.QAHoursPerMonth, 1e-9)
	assert.Equal(t, schema.RiskHigh, rec.RiskLevel)
	assert.Equal(t, "red", rec.RiskColor)
	assert.Equal(t, "Asignar 3 ingeniero(s) QA por 6 meses. Estimar 240 horas totales de pruebas.", rec.Recommendation)
}

func TestRecommendQAResourcesTiers(t *testing.T) {
	tests := []struct {
		name      string
		defects   float64
		months    int
		engineers int
		risk      schema.RiskLevel
		color     string
	}{
		{"tiny project still gets one", 10, 6, 1, schema.RiskLow, "green"},
		{"short project concentrates effort", 100, 2, 3, schema.RiskHigh, "red"},
		{"long project spreads work", 100, 12, 2, schema.RiskHigh, "red"},
		{"medium risk band", 50, 6, 1, schema.RiskMedium, "yellow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RecommendQAResources(tt.defects, tt.months)
			assert.Equal(t, tt.engineers, rec.QAEngineers)
			assert.Equal(t, tt.risk, rec.RiskLevel)
			assert.Equal(t, tt.color, rec.RiskColor)
		})
	}
}

func TestCalibrateSigmaWithHistory(t *testing.T) {
	quality := []schema.QualityRecord{
		{Project: "a", Severity: schema.SeverityHigh, DefectCount: 10},
		{Project: "a", Severity: schema.SeverityLow, DefectCount: 2},
		{Project: "b", Severity: schema.SeverityMedium, DefectCount: 6},
	}
	cal := CalibrateSigma(quality, nil)

	assert.True(t, cal.HasHistory)
	assert.InDelta(t, 66.0, cal.Default, 1e-9)
	assert.InDelta(t, 40.0, cal.Small, 1e-9)
	assert.InDelta(t, 66.0, cal.Medium, 1e-9)
	assert.InDelta(t, 100.0, cal.Large, 1e-9)
	assert.InDelta(t, 144.0, cal.XLarge, 1e-9)
	assert.InDelta(t, 0.8, cal.Confidence, 1e-9)
	assert.InDelta(t, 9.0, cal.AvgHistoricalDefects, 1e-9) // (12 + 6) / 2
	assert.InDelta(t, 4.2426, cal.StdHistoricalDefects, 0.001)
}

func TestCalibrateSigmaNoHistory(t *testing.T) {
	cal := CalibrateSigma(nil, nil)
	assert.False(t, cal.HasHistory)
	assert.InDelta(t, 60.0, cal.Default, 1e-9)
	assert.InDelta(t, 90.0, cal.Large, 1e-9)
	assert.InDelta(t, 0.5, cal.Confidence, 1e-9)
	assert.Zero(t, cal.AvgHistoricalDefects)
}

func TestCalibrateSigmaSingleProjectStdZero(t *testing.T) {
	quality := []schema.QualityRecord{
		{Project: "solo", Severity: schema.SeverityLow, DefectCount: 5},
	}
	cal := CalibrateSigma(quality, nil)
	assert.True(t, cal.HasHistory)
	assert.Zero(t, cal.StdHistoricalDefects)
}

func TestModelConfidenceTiers(t *testing.T) {
	makeData := func(projects, records int) ([]schema.QualityRecord, []schema.ProjectRecord) {
		ps := make([]schema.ProjectRecord, projects)
		for i := range ps {
			ps[i] = schema.ProjectRecord{Name: fmt.Sprintf("proj-%03d", i)}
		}
		qs := make([]schema.QualityRecord, records)
		for i := range qs {
			qs[i] = schema.QualityRecord{Project: "x", Severity: schema.SeverityLow, DefectCount: 1}
		}
		return qs, ps
	}

	tests := []struct {
		projects, records int
		score             float64
		label             string
	}{
		{120, 1200, 0.95, "Muy Alta"},
		{60, 600, 0.85, "Alta"},
		{25, 250, 0.70, "Media"},
		{5, 50, 0.50, "Baja"},
	}
	for _, tt := range tests {
		qs, ps := makeData(tt.projects, tt.records)
		c := ModelConfidence(qs, ps)
		assert.InDelta(t, tt.score, c.Score, 1e-9, "projects=%d records=%d", tt.projects, tt.records)
		assert.Equal(t, tt.label, c.Label)
		assert.Equal(t, tt.projects, c.NumProjects)
		assert.Equal(t, tt.records, c.NumQualityRecords)
		assert.True(t, strings.HasSuffix(c.Message, tt.label+"."))
	}
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		months  int
		team    int
		valid   bool
		message string
	}{
		{"valid mid-size project", 500_000, 12, 20, true, ""},
		{"too small", 50, 6, 5, false, "Tamaño de proyecto debe ser al menos 100 LOC"},
		{"too large", 20_000_000, 6, 5, false, "Tamaño de proyecto demasiado grande (>10M LOC)"},
		{"duration below range", 10_000, 0, 5, false, "Duración debe estar entre 1 y 36 meses"},
		{"duration above range", 10_000, 48, 5, false, "Duración debe estar entre 1 y 36 meses"},
		{"team below range", 10_000, 6, 0, false, "Tamaño de equipo debe estar entre 1 y 100 desarrolladores"},
		{"team above range", 10_000, 6, 150, false, "Tamaño de equipo debe estar entre 1 y 100 desarrolladores"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateInputs(tt.size, tt.months, tt.team)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}
