package scorecard

import (
	"strings"
	"testing"

	"github.com/miradorhq/mirador/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProjects() []schema.ProjectRecord {
	return []schema.ProjectRecord{
		{Name: "crm-java-01", Client: "acme", NetProfit: 600_000, TotalCost: 400_000, Country: "Chile"},
		{Name: "erp-python-02", Client: "acme", NetProfit: 200_000, TotalCost: 300_000, Country: "Peru"},
		{Name: "web-go-03", Client: "globex", NetProfit: -50_000, TotalCost: 150_000, Country: "Chile"},
	}
}

func testQuality() []schema.QualityRecord {
	return []schema.QualityRecord{
		{Project: "crm-java-01", Severity: schema.SeverityCritical, DefectCount: 1},
		{Project: "erp-python-02", Severity: schema.SeverityMedium, DefectCount: 9},
	}
}

func TestGenerateAll(t *testing.T) {
	okrs := GenerateAll(testProjects(), testQuality(), "")
	require.Len(t, okrs, 8)

	counts := make(map[schema.Perspective]int)
	for _, okr := range okrs {
		counts[okr.Perspective]++
		assert.Equal(t, "Q1 2025", okr.Quarter)
		assert.NotEmpty(t, okr.KeyResults)
	}
	for _, p := range schema.AllPerspectives {
		assert.Equal(t, 2, counts[p], "perspective %s", p)
	}
}

func TestFinancialOKRs(t *testing.T) {
	okrs := FinancialOKRs(testProjects(), "Q2 2025")
	require.Len(t, okrs, 2)

	revenue := okrs[0].KeyResults[0]
	assert.InDelta(t, 750_000, revenue.Current, 1e-6)

	highValue := okrs[0].KeyResults[1]
	assert.InDelta(t, 1, highValue.Current, 1e-9) // only crm-java-01 clears $500K

	margin := okrs[0].KeyResults[2]
	// 750000 / 850000 * 100
	assert.InDelta(t, 88.235, margin.Current, 0.01)
	assert.Equal(t, schema.StatusOnTrack, margin.Status()) // capped at 100%

	avgCost := okrs[1].KeyResults[0]
	assert.InDelta(t, 283_333.33, avgCost.Current, 0.01)
}

func TestCustomerOKRs(t *testing.T) {
	okrs := CustomerOKRs(testProjects(), "Q1 2025")
	require.Len(t, okrs, 2)

	clients := okrs[0].KeyResults[0]
	assert.InDelta(t, 2, clients.Current, 1e-9)

	repeat := okrs[0].KeyResults[1]
	assert.InDelta(t, 50.0, repeat.Current, 1e-9) // acme repeats, globex does not

	avgValue := okrs[1].KeyResults[1]
	assert.InDelta(t, 400_000, avgValue.Current, 1e-6) // mean of the two profitable projects
}

func TestInternalOKRs(t *testing.T) {
	okrs := InternalOKRs(testProjects(), testQuality(), "Q1 2025")
	require.Len(t, okrs, 2)

	density := okrs[0].KeyResults[0]
	assert.InDelta(t, 10.0/3.0, density.Current, 1e-9)

	critical := okrs[0].KeyResults[1]
	assert.InDelta(t, 10.0, critical.Current, 1e-9) // 1 of 10 defects

	completion := okrs[1].KeyResults[0]
	assert.InDelta(t, 66.666, completion.Current, 0.01)
}

func TestLearningOKRsTechDiversity(t *testing.T) {
	okrs := LearningOKRs(testProjects(), "Q1 2025")
	stacks := okrs[0].KeyResults[1]
	assert.InDelta(t, 3, stacks.Current, 1e-9) // java, python, go
}

func TestPerspectiveScore(t *testing.T) {
	okrs := []schema.Objective{
		{
			Objective:   "obj-a",
			Perspective: schema.PerspectiveFinancial,
			KeyResults: []schema.KeyResult{
				{KR: "kr1", Target: 100, Current: 100},
				{KR: "kr2", Target: 100, Current: 80},
			},
		},
		{
			Objective:   "obj-b",
			Perspective: schema.PerspectiveFinancial,
			KeyResults: []schema.KeyResult{
				{KR: "kr3", Target: 100, Current: 60},
			},
		},
	}

	summary := PerspectiveScore(okrs, schema.PerspectiveFinancial)
	// (90 + 60) / 2
	assert.InDelta(t, 75.0, summary.Score, 1e-9)
	assert.Equal(t, schema.StatusAtRisk, summary.Status)
	assert.Equal(t, 2, summary.OKRCount)
	assert.Equal(t, 3, summary.KRCount)
	assert.Equal(t, []string{"obj-a", "obj-b"}, summary.Objectives)
}

func TestPerspectiveScoreNoOKRs(t *testing.T) {
	summary := PerspectiveScore(nil, schema.PerspectiveCustomer)
	assert.Zero(t, summary.Score)
	assert.Equal(t, schema.StatusNoOKRs, summary.Status)
	assert.Zero(t, summary.OKRCount)
}

func TestSummariesOrder(t *testing.T) {
	okrs := GenerateAll(testProjects(), testQuality(), "Q1 2025")
	summaries := Summaries(okrs)
	require.Len(t, summaries, 4)
	for i, p := range schema.AllPerspectives {
		assert.Equal(t, p, summaries[i].Perspective)
	}
}

func TestBuildHierarchy(t *testing.T) {
	okrs := GenerateAll(testProjects(), testQuality(), "Q1 2025")
	root := BuildHierarchy(okrs)

	assert.Equal(t, "Strategic OKRs", root.Name)
	require.Len(t, root.Children, 4)
	assert.Equal(t, string(schema.PerspectiveFinancial), root.Children[0].Name)
	require.Len(t, root.Children[0].Children, 2)

	// Objectives longer than 40 characters get an ellipsis.
	longObjective := root.Children[0].Children[0].Name
	assert.True(t, strings.HasSuffix(longObjective, "..."))
	assert.Len(t, []rune(longObjective), 43)

	// Key results longer than 30 characters are trimmed too.
	kr := root.Children[0].Children[0].Children[1]
	assert.True(t, strings.HasSuffix(kr.Name, "..."))
}

func TestTruncateShortStringsUntouched(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 30))
}

func TestPerspectiveIcon(t *testing.T) {
	assert.Equal(t, "💰", PerspectiveIcon(schema.PerspectiveFinancial))
	assert.Equal(t, "📚", PerspectiveIcon(schema.PerspectiveLearning))
	assert.Equal(t, "📊", PerspectiveIcon(schema.Perspective("Unknown")))
}

func TestFormatTable(t *testing.T) {
	okrs := GenerateAll(testProjects(), testQuality(), "Q1 2025")
	rows := FormatTable(okrs)
	require.Len(t, rows, 20)

	first := rows[0]
	assert.Equal(t, schema.PerspectiveFinancial, first.Perspective)
	assert.Equal(t, "Generar $50M en ganancia neta", first.KeyResult)
	assert.Equal(t, "2%", first.Progress) // 750K of 50M, rendered without decimals
	assert.Equal(t, schema.StatusOffTrack, first.Status)
	assert.Equal(t, "CFO", first.Owner)
}
