package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/miradorhq/mirador/core/kpi"
	"github.com/miradorhq/mirador/core/olap"
	"github.com/miradorhq/mirador/core/rayleigh"
	"github.com/miradorhq/mirador/core/scorecard"
	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/internal/dataset"
	"github.com/miradorhq/mirador/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// loadSnapshot resolves the CSV paths from the request, falling back to the
// base config.
func (h *toolHandler) loadSnapshot(request mcp.CallToolRequest) (*dataset.Snapshot, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("projects", ""); p != "" {
		cfg.ProjectsFile = p
	}
	if q := request.GetString("quality", ""); q != "" {
		cfg.QualityFile = q
	}
	return dataset.Load(cfg.ProjectsFile, cfg.QualityFile)
}

func (h *toolHandler) handleGetKPIs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.loadSnapshot(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	results := kpi.AllKPIs(snap.Projects, snap.Quality)
	displays := make([]schema.KPIDisplay, 0, len(schema.AllKPIKinds))
	for _, kind := range schema.AllKPIKinds {
		displays = append(displays, kpi.FormatDisplay(results[kind]))
	}

	jsonData, _ := json.MarshalIndent(displays, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetScorecard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := h.loadSnapshot(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	quarter := request.GetString("quarter", h.baseCfg.Quarter)
	okrs := scorecard.GenerateAll(snap.Projects, snap.Quality, quarter)

	model := struct {
		Quarter      string                      `json:"quarter"`
		Perspectives []schema.PerspectiveSummary `json:"perspectives"`
		OKRs         []schema.OKRRow             `json:"okrs"`
		Hierarchy    schema.HierarchyNode        `json:"hierarchy"`
	}{
		Quarter:      quarter,
		Perspectives: scorecard.Summaries(okrs),
		OKRs:         scorecard.FormatTable(okrs),
		Hierarchy:    scorecard.BuildHierarchy(okrs),
	}

	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePredictDefects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	size := request.GetInt("size", 0)
	months := request.GetInt("months", 0)
	team := request.GetInt("team", 0)

	if ok, msg := rayleigh.ValidateInputs(size, months, team); !ok {
		return mcp.NewToolResultError(msg), nil
	}

	confidence := request.GetFloat("confidence", h.baseCfg.Confidence)
	if confidence < 0.5 || confidence > 0.99 {
		return mcp.NewToolResultError(fmt.Sprintf("confidence must be between 0.50 and 0.99 (received %.2f)", confidence)), nil
	}

	params := schema.PredictionParams{
		Size:           size,
		DurationMonths: months,
		TeamSize:       team,
		Experience:     schema.ExperienceLevel(request.GetString("experience", string(schema.ExperienceMid))),
		Complexity:     schema.ComplexityLevel(request.GetString("complexity", string(schema.ComplexityMedium))),
	}

	// The dataset only informs the confidence panel; the prediction itself
	// derives sigma from the project duration.
	var confidenceReport schema.Confidence
	if snap, err := dataset.Load(h.baseCfg.ProjectsFile, h.baseCfg.QualityFile); err == nil {
		confidenceReport = rayleigh.ModelConfidence(snap.Quality, snap.Projects)
	} else {
		confidenceReport = rayleigh.ModelConfidence(nil, nil)
	}

	prediction := rayleigh.PredictDefects(params, 0)
	curve := rayleigh.GenerateCurve(prediction.TotalDefects, prediction.DurationDays, prediction.Sigma, confidence)
	recommendation := rayleigh.RecommendQAResources(prediction.TotalDefects, months)

	model := struct {
		Prediction     schema.Prediction     `json:"prediction"`
		Curve          schema.Curve          `json:"curve"`
		Recommendation schema.Recommendation `json:"recommendation"`
		Confidence     schema.Confidence     `json:"confidence"`
	}{
		Prediction:     prediction,
		Curve:          curve,
		Recommendation: recommendation,
		Confidence:     confidenceReport,
	}

	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetricTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := request.GetString("source", "")
	timeColumn := request.GetString("time_column", "")
	metric := request.GetString("metric", "")
	periods := request.GetInt("periods", contract.DefaultPeriods)

	if source == "" {
		return mcp.NewToolResultError("--source is required"), nil
	}
	if timeColumn == "" {
		return mcp.NewToolResultError("--time-column is required"), nil
	}
	if metric == "" {
		return mcp.NewToolResultError("--metric is required"), nil
	}
	if periods < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("--periods must be at least 1 (received %d)", periods)), nil
	}

	table, err := dataset.LoadTable(source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load source: %v", err)), nil
	}

	result := olap.MetricTrend(table, timeColumn, metric, periods)
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
