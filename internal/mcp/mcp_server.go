// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/miradorhq/mirador/internal/contract"
)

// NewMCPServer initializes and configures the Mirador MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Mirador Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_kpis ---
	s.AddTool(mcp.NewTool("get_kpis",
		mcp.WithDescription("Compute the portfolio KPIs from the project and quality CSV exports."),
		mcp.WithString("projects", mcp.Description("Path to the projects CSV export (defaults to the configured file).")),
		mcp.WithString("quality", mcp.Description("Path to the quality CSV export (defaults to the configured file).")),
	), h.handleGetKPIs)

	// --- 2. Tool: get_scorecard ---
	s.AddTool(mcp.NewTool("get_scorecard",
		mcp.WithDescription("Generate the Balanced Scorecard with OKRs across the four perspectives."),
		mcp.WithString("projects", mcp.Description("Path to the projects CSV export.")),
		mcp.WithString("quality", mcp.Description("Path to the quality CSV export.")),
		mcp.WithString("quarter", mcp.Description("Reporting quarter label (e.g. 'Q1 2025').")),
	), h.handleGetScorecard)

	// --- 3. Tool: predict_defects ---
	s.AddTool(mcp.NewTool("predict_defects",
		mcp.WithDescription("Predict software defects over time using a Rayleigh distribution model."),
		mcp.WithNumber("size", mcp.Description("Project size in lines of code."), mcp.Required()),
		mcp.WithNumber("months", mcp.Description("Project duration in months."), mcp.Required()),
		mcp.WithNumber("team", mcp.Description("Team size in engineers."), mcp.Required()),
		mcp.WithString("experience", mcp.Description("Team experience level. Defaults to 'Mid'."), mcp.Enum("Junior", "Mid", "Senior")),
		mcp.WithString("complexity", mcp.Description("Project complexity. Defaults to 'Media'."), mcp.Enum("Baja", "Media", "Alta", "Muy Alta")),
		mcp.WithNumber("confidence", mcp.Description("Confidence level for the prediction bands (0.50-0.99).")),
	), h.handlePredictDefects)

	// --- 4. Tool: get_metric_trend ---
	s.AddTool(mcp.NewTool("get_metric_trend",
		mcp.WithDescription("Compute the trend of a metric column over time buckets in a CSV export."),
		mcp.WithString("source", mcp.Description("Path to the CSV export holding the metric."), mcp.Required()),
		mcp.WithString("time_column", mcp.Description("Column used for time bucketing."), mcp.Required()),
		mcp.WithString("metric", mcp.Description("Numeric column to aggregate per bucket."), mcp.Required()),
		mcp.WithNumber("periods", mcp.Description("Number of trailing buckets to keep.")),
	), h.handleGetMetricTrend)

	return s
}

// StartMCPServer starts the Mirador MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
