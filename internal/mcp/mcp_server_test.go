package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/edgecov/internal/contract"
	mcp_internal "github.com/huangsam/edgecov/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	reportA = `{"finalCallInfoGraph":{"edges":[
		{"source":{"serviceName":"A","simpleAPIMethod":{"endpoint":"/a","method":"GET"}},
		 "target":{"serviceName":"B","simpleAPIMethod":{"endpoint":"/b","method":"POST"}},"hitCount":2},
		{"source":{"serviceName":"A","simpleAPIMethod":{"endpoint":"/a","method":"GET"}},
		 "target":{"serviceName":"C","simpleAPIMethod":{"endpoint":"/c","method":"GET"}},"hitCount":1}
	]}}`
	reportB = `{"finalCallInfoGraph":{"edges":[
		{"source":{"serviceName":"A","simpleAPIMethod":{"endpoint":"/a","method":"GET"}},
		 "target":{"serviceName":"B","simpleAPIMethod":{"endpoint":"/b","method":"POST"}},"hitCount":5}
	]}}`
	runtimeReport = `{"finalRuntimeGraph":{"edges":[
		{"source":{"serviceName":"A","simpleAPIMethod":{"endpoint":"/a","method":"GET"}},
		 "target":{"serviceName":"B","simpleAPIMethod":{"endpoint":"/b","method":"PUT"}},"hitCount":0}
	]}}`
	scenarioLog = "boot\n" +
		"Finish execute current test scenario UUID: aa-01, Edge covered count: 3, Edge coverage: 0.3, covered status code count: 1\n" +
		"Finish execute current test scenario UUID: aa-02, Edge covered count: 4, Edge coverage: 0.4, covered status code count: 2\n"
	sisp = `[{"param_name":"id","valid":[{"category":"c","samples":["x","y"]}]}]`
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(contract.NewDefaultConfig())
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestCoverageDiffTool(t *testing.T) {
	res := callTool(t, "coverage_diff", map[string]any{
		"file1": writeFile(t, "a.json", reportA),
		"file2": writeFile(t, "b.json", reportB),
	})
	require.False(t, res.IsError, resultText(t, res))

	var decoded struct {
		OnlyInFile1 []json.RawMessage `json:"only_in_file1"`
		OnlyInFile2 []json.RawMessage `json:"only_in_file2"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Len(t, decoded.OnlyInFile1, 1)
	assert.Empty(t, decoded.OnlyInFile2)
}

func TestCoverageCheckTool(t *testing.T) {
	args := map[string]any{
		"baseline":  writeFile(t, "a.json", reportA),
		"candidate": writeFile(t, "b.json", reportB),
	}
	res := callTool(t, "coverage_check", args)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"passed": false`)

	args["max_lost"] = 1.0
	res = callTool(t, "coverage_check", args)
	assert.Contains(t, resultText(t, res), `"passed": true`)

	args["max_lost"] = -1.0
	res = callTool(t, "coverage_check", args)
	assert.True(t, res.IsError)
}

func TestScenarioTrendTool(t *testing.T) {
	res := callTool(t, "scenario_trend", map[string]any{"log_path": writeFile(t, "fuzz.log", scenarioLog)})
	require.False(t, res.IsError, resultText(t, res))

	var decoded struct {
		Series struct {
			EdgeCoveredCount []int `json:"edge_covered_count"`
		} `json:"series"`
		Skipped int `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, []int{3, 4}, decoded.Series.EdgeCoveredCount)
	assert.Equal(t, 0, decoded.Skipped)

	res = callTool(t, "scenario_trend", map[string]any{"log_path": "-"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "must name a file")
}

func TestServiceGraphTool(t *testing.T) {
	res := callTool(t, "service_graph", map[string]any{"report_path": writeFile(t, "runtime.json", runtimeReport)})
	require.False(t, res.IsError, resultText(t, res))
	assert.JSONEq(t, `{"nodes":["A","B"],"edges":[{"source":"A","target":"B","label":"PUT"}]}`, resultText(t, res))
}

func TestFuzzDictionaryTool(t *testing.T) {
	res := callTool(t, "fuzz_dictionary", map[string]any{"sisp_path": writeFile(t, "sisp.json", sisp)})
	require.False(t, res.IsError, resultText(t, res))
	assert.JSONEq(t, `[{"name":"id","value":"x"}]`, resultText(t, res))
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	tests := []struct {
		tool     string
		args     map[string]any
		contains string
	}{
		{"coverage_diff", map[string]any{"file1": "a.json"}, "file2 is required"},
		{"coverage_diff", map[string]any{"file1": "/missing/a.json", "file2": "/missing/b.json"}, "diff failed"},
		{"coverage_check", map[string]any{}, "baseline is required"},
		{"scenario_trend", map[string]any{}, "log_path is required"},
		{"service_graph", map[string]any{"report_path": "/missing/runtime.json"}, "graph failed"},
		{"fuzz_dictionary", map[string]any{"sisp_path": ""}, "sisp_path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.tool+" "+tt.contains, func(t *testing.T) {
			res := callTool(t, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.contains)
		})
	}
}
