package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/edgecov/core"
	"github.com/huangsam/edgecov/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// requiredPaths reads the named path arguments, failing on the first empty one.
func requiredPaths(request mcp.CallToolRequest, names ...string) ([]string, error) {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := request.GetString(name, "")
		if p == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func jsonResult(data any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleCoverageDiff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	paths, err := requiredPaths(request, "file1", "file2")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid diff parameters: %v", err)), nil
	}
	cfg.Inputs = paths
	if k := request.GetString("graph_key", ""); k != "" {
		cfg.GraphKey = k
	}

	result, err := core.GetDiffResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diff failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleCoverageCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	paths, err := requiredPaths(request, "baseline", "candidate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}
	cfg.Inputs = paths
	cfg.MaxLost = request.GetInt("max_lost", cfg.MaxLost)
	if cfg.MaxLost < 0 {
		return mcp.NewToolResultError("invalid check parameters: max_lost must be >= 0"), nil
	}
	if k := request.GetString("graph_key", ""); k != "" {
		cfg.GraphKey = k
	}

	result, err := core.GetGateResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleScenarioTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	paths, err := requiredPaths(request, "log_path")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: %v", err)), nil
	}
	// stdin carries the MCP transport
	if paths[0] == "-" {
		return mcp.NewToolResultError("invalid trend parameters: log_path must name a file"), nil
	}
	cfg.Inputs = paths

	result, err := core.GetTrendResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleServiceGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	paths, err := requiredPaths(request, "report_path")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid graph parameters: %v", err)), nil
	}
	cfg.Inputs = paths
	if k := request.GetString("graph_key", ""); k != "" {
		cfg.RuntimeGraphKey = k
	}

	graph, err := core.GetGraphResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
	}
	return jsonResult(graph), nil
}

func (h *toolHandler) handleFuzzDictionary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	paths, err := requiredPaths(request, "sisp_path")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dictionary parameters: %v", err)), nil
	}
	cfg.Inputs = paths

	entries, err := core.GetDictResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dictionary failed: %v", err)), nil
	}
	return jsonResult(entries), nil
}
