// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the edgecov MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Edge Coverage Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: coverage_diff ---
	s.AddTool(mcp.NewTool("coverage_diff",
		mcp.WithDescription("Compare the covered service-call edges of two fuzzer coverage reports."),
		mcp.WithString("file1", mcp.Description("Path to the first coverage report (JSON)."), mcp.Required()),
		mcp.WithString("file2", mcp.Description("Path to the second coverage report (JSON)."), mcp.Required()),
		mcp.WithString("graph_key", mcp.Description("Top-level graph container to read. Defaults to 'finalCallInfoGraph'.")),
	), h.handleCoverageDiff)

	// --- 2. Tool: coverage_check ---
	s.AddTool(mcp.NewTool("coverage_check",
		mcp.WithDescription("Check that a candidate report does not lose covered edges compared to a baseline."),
		mcp.WithString("baseline", mcp.Description("Path to the baseline coverage report."), mcp.Required()),
		mcp.WithString("candidate", mcp.Description("Path to the candidate coverage report."), mcp.Required()),
		mcp.WithNumber("max_lost", mcp.Description("Number of lost edges tolerated. Defaults to 0.")),
		mcp.WithString("graph_key", mcp.Description("Top-level graph container to read.")),
	), h.handleCoverageCheck)

	// --- 3. Tool: scenario_trend ---
	s.AddTool(mcp.NewTool("scenario_trend",
		mcp.WithDescription("Extract per-scenario coverage metrics from a fuzzer execution log."),
		mcp.WithString("log_path", mcp.Description("Path to the execution log."), mcp.Required()),
	), h.handleScenarioTrend)

	// --- 4. Tool: service_graph ---
	s.AddTool(mcp.NewTool("service_graph",
		mcp.WithDescription("Build the service dependency graph of a runtime report."),
		mcp.WithString("report_path", mcp.Description("Path to the runtime report (JSON)."), mcp.Required()),
		mcp.WithString("graph_key", mcp.Description("Top-level graph container to read. Defaults to 'finalRuntimeGraph'.")),
	), h.handleServiceGraph)

	// --- 5. Tool: fuzz_dictionary ---
	s.AddTool(mcp.NewTool("fuzz_dictionary",
		mcp.WithDescription("Extract one valid sample per category from a parameter validation schema."),
		mcp.WithString("sisp_path", mcp.Description("Path to the parameter validation schema (JSON list)."), mcp.Required()),
	), h.handleFuzzDictionary)

	return s
}

// StartMCPServer starts the edgecov MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
