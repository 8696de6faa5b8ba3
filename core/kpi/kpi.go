// Package kpi computes the six operational KPIs of the dashboard:
// completion rate, budget efficiency, team utilization, defect density,
// average resolution time and the client satisfaction index.
//
// Every calculator is pure and total: empty input degrades to a zeroed
// result with StatusNoData instead of failing, because the dashboard must
// always have something to render.
package kpi

import (
	"math"

	"github.com/miradorhq/mirador/schema"
)

// CompletionRate computes the share of completed projects (profit > 0),
// as a percentage of all projects.
func CompletionRate(projects []schema.ProjectRecord) schema.KPIResult {
	if len(projects) == 0 {
		return noData(schema.KPICompletionRate, "%", map[string]any{"completed": 0, "total": 0})
	}

	total := len(projects)
	completed := 0
	for _, p := range projects {
		if p.Completed() {
			completed++
		}
	}
	rate := float64(completed) / float64(total) * 100

	return schema.KPIResult{
		Kind:   schema.KPICompletionRate,
		Value:  round2(rate),
		Unit:   "%",
		Status: statusFor(rate, schema.KPICompletionRate),
		Meta: map[string]any{
			"completed":   completed,
			"total":       total,
			"in_progress": total - completed,
		},
	}
}

// BudgetEfficiency computes the mean per-project ROI over projects with a
// positive cost, plus the best and worst ROI observed.
func BudgetEfficiency(projects []schema.ProjectRecord) schema.KPIResult {
	var rois []float64
	for _, p := range projects {
		if p.TotalCost > 0 {
			rois = append(rois, p.NetProfit/p.TotalCost*100)
		}
	}
	if len(rois) == 0 {
		return noData(schema.KPIBudgetEfficiency, "%", map[string]any{"avg_roi": 0.0, "projects_analyzed": 0})
	}

	sum, best, worst := 0.0, rois[0], rois[0]
	for _, roi := range rois {
		sum += roi
		if roi > best {
			best = roi
		}
		if roi < worst {
			worst = roi
		}
	}
	avg := sum / float64(len(rois))

	return schema.KPIResult{
		Kind:   schema.KPIBudgetEfficiency,
		Value:  round2(avg),
		Unit:   "%",
		Status: statusFor(avg, schema.KPIBudgetEfficiency),
		Meta: map[string]any{
			"avg_roi":           round2(avg),
			"best_roi":          round2(best),
			"worst_roi":         round2(worst),
			"projects_analyzed": len(rois),
		},
	}
}

// TeamUtilization computes the share of active projects (profit or cost
// recorded) and counts distinct clients for context.
func TeamUtilization(projects []schema.ProjectRecord) schema.KPIResult {
	if len(projects) == 0 {
		return noData(schema.KPITeamUtilization, "%", map[string]any{"active": 0, "total": 0})
	}

	total := len(projects)
	active := 0
	for _, p := range projects {
		if p.Active() {
			active++
		}
	}
	utilization := float64(active) / float64(total) * 100

	return schema.KPIResult{
		Kind:   schema.KPITeamUtilization,
		Value:  round2(utilization),
		Unit:   "%",
		Status: statusFor(utilization, schema.KPITeamUtilization),
		Meta: map[string]any{
			"active_projects": active,
			"total_projects":  total,
			"idle_projects":   total - active,
			"unique_clients":  schema.CountDistinctClients(projects),
		},
	}
}

// DefectDensity computes total defects per distinct project, with a
// per-severity breakdown of the defect counts.
func DefectDensity(quality []schema.QualityRecord, projects []schema.ProjectRecord) schema.KPIResult {
	if len(quality) == 0 || len(projects) == 0 {
		return noData(schema.KPIDefectDensity, "defects/project", map[string]any{"total_defects": 0, "projects": 0})
	}

	totalDefects := schema.TotalDefects(quality)
	totalProjects := schema.CountDistinctProjects(projects)

	density := 0.0
	if totalProjects > 0 {
		density = float64(totalDefects) / float64(totalProjects)
	}

	breakdown := make(map[schema.Severity]int)
	for _, q := range quality {
		breakdown[q.Severity] += q.DefectCount
	}

	return schema.KPIResult{
		Kind:   schema.KPIDefectDensity,
		Value:  round2(density),
		Unit:   "defects/project",
		Status: statusFor(density, schema.KPIDefectDensity),
		Meta: map[string]any{
			"total_defects":      totalDefects,
			"total_projects":     totalProjects,
			"density":            round2(density),
			"severity_breakdown": breakdown,
		},
	}
}

// AvgResolutionTime estimates the defect-count-weighted average resolution
// time, using fixed per-severity day estimates as a proxy.
func AvgResolutionTime(quality []schema.QualityRecord) schema.KPIResult {
	if len(quality) == 0 {
		return noData(schema.KPIAvgResolutionTime, "days", map[string]any{"avg_days": 0.0, "defects": 0})
	}

	totalDefects := 0
	weighted := 0.0
	for _, q := range quality {
		days, ok := schema.SeverityResolutionDays[q.Severity]
		if !ok {
			days = schema.DefaultResolutionDays
		}
		totalDefects += q.DefectCount
		weighted += days * float64(q.DefectCount)
	}
	if totalDefects == 0 {
		out := noData(schema.KPIAvgResolutionTime, "days", map[string]any{"avg_days": 0.0, "defects": 0})
		out.Meta["status_detail"] = "No defects"
		return out
	}

	avg := weighted / float64(totalDefects)

	bySeverity := make(map[schema.Severity]map[string]any)
	for severity, days := range schema.SeverityResolutionDays {
		count := 0
		for _, q := range quality {
			if q.Severity == severity {
				count += q.DefectCount
			}
		}
		if count > 0 {
			bySeverity[severity] = map[string]any{"days": days, "count": count}
		}
	}

	return schema.KPIResult{
		Kind:   schema.KPIAvgResolutionTime,
		Value:  round1(avg),
		Unit:   "days",
		Status: statusFor(avg, schema.KPIAvgResolutionTime),
		Meta: map[string]any{
			"avg_days":               round1(avg),
			"total_defects":          totalDefects,
			"resolution_by_severity": bySeverity,
		},
	}
}

// ClientSatisfaction combines budget efficiency (40%) and an inverse
// defect-density quality score (60%) into a 0-100 index.
func ClientSatisfaction(projects []schema.ProjectRecord, quality []schema.QualityRecord) schema.KPIResult {
	if len(projects) == 0 && len(quality) == 0 {
		return noData(schema.KPIClientSatisfaction, "index", map[string]any{
			"index":             0.0,
			"budget_component":  0.0,
			"quality_component": 0.0,
		})
	}

	budget := BudgetEfficiency(projects)
	budgetScore := math.Min(budget.Value*2, 100) // ROI of 50%+ scores full marks

	density := DefectDensity(quality, projects)
	qualityScore := math.Max(100-density.Value*2, 0)

	index := budgetScore*0.4 + qualityScore*0.6

	return schema.KPIResult{
		Kind:   schema.KPIClientSatisfaction,
		Value:  round1(index),
		Unit:   "index",
		Status: statusFor(index, schema.KPIClientSatisfaction),
		Meta: map[string]any{
			"index":             round1(index),
			"budget_component":  round1(budgetScore),
			"quality_component": round1(qualityScore),
			"budget_efficiency": budget.Value,
			"defect_density":    density.Value,
		},
	}
}

// AllKPIs computes the six KPIs in one pass, keyed by KPI kind.
func AllKPIs(projects []schema.ProjectRecord, quality []schema.QualityRecord) map[schema.KPIKind]schema.KPIResult {
	return map[schema.KPIKind]schema.KPIResult{
		schema.KPICompletionRate:     CompletionRate(projects),
		schema.KPIBudgetEfficiency:   BudgetEfficiency(projects),
		schema.KPITeamUtilization:    TeamUtilization(projects),
		schema.KPIDefectDensity:      DefectDensity(quality, projects),
		schema.KPIAvgResolutionTime:  AvgResolutionTime(quality),
		schema.KPIClientSatisfaction: ClientSatisfaction(projects, quality),
	}
}

// statusFor applies the per-KPI thresholds, honoring inverse direction.
func statusFor(value float64, kind schema.KPIKind) schema.Status {
	threshold := schema.GetKPIThresholds()[kind]
	if threshold.Inverse {
		switch {
		case value <= threshold.Green:
			return schema.StatusHealthy
		case value <= threshold.Yellow:
			return schema.StatusWarning
		default:
			return schema.StatusCritical
		}
	}
	switch {
	case value >= threshold.Green:
		return schema.StatusHealthy
	case value >= threshold.Yellow:
		return schema.StatusWarning
	default:
		return schema.StatusCritical
	}
}

func noData(kind schema.KPIKind, unit string, meta map[string]any) schema.KPIResult {
	return schema.KPIResult{Kind: kind, Value: 0, Unit: unit, Status: schema.StatusNoData, Meta: meta}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
