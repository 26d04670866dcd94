// Package core has core logic for edge keying, coverage diffs and scenario trends.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, w contract.OutputWriter) error

// Sentinel errors for outcomes that should fail the process after output is written.
var (
	ErrGateFailed         = errors.New("coverage gate failed")
	ErrTooManyParseErrors = errors.New("too many unparsable scenario lines")
)

// stdinPath selects standard input as the log source.
const stdinPath = "-"

// GetDiffResults loads both reports and diffs their covered edges.
func GetDiffResults(ctx context.Context, cfg *contract.Config) (schema.DiffResult, error) {
	if len(cfg.Inputs) != 2 {
		return schema.DiffResult{}, fmt.Errorf("diff needs exactly two report files (received %d)", len(cfg.Inputs))
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogDiffHeader(cfg.Inputs[0], cfg.Inputs[1], cfg.GraphKey)
	}
	return diffFiles(cfg.Inputs[0], cfg.Inputs[1], cfg.GraphKey)
}

func diffFiles(file1, file2, graphKey string) (schema.DiffResult, error) {
	a, err := LoadSnapshotFile(file1, graphKey)
	if err != nil {
		return schema.DiffResult{}, err
	}
	b, err := LoadSnapshotFile(file2, graphKey)
	if err != nil {
		return schema.DiffResult{}, err
	}
	return DiffSnapshots(a, b), nil
}

// ExecuteDiff runs the diff command and writes its result.
func ExecuteDiff(ctx context.Context, cfg *contract.Config, w contract.OutputWriter) error {
	start := time.Now()
	result, err := GetDiffResults(ctx, cfg)
	if err != nil {
		return err
	}
	return w.WriteDiff(result, cfg, time.Since(start))
}

// GetGateResults diffs a baseline against a candidate and evaluates the gate.
func GetGateResults(ctx context.Context, cfg *contract.Config) (schema.GateResult, error) {
	if len(cfg.Inputs) != 2 {
		return schema.GateResult{}, fmt.Errorf("check needs a baseline and a candidate report (received %d files)", len(cfg.Inputs))
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogCheckHeader(cfg.Inputs[0], cfg.Inputs[1], cfg.MaxLost)
	}
	diff, err := diffFiles(cfg.Inputs[0], cfg.Inputs[1], cfg.GraphKey)
	if err != nil {
		return schema.GateResult{}, err
	}
	return EvaluateGate(diff, cfg.MaxLost), nil
}

// ExecuteCheck runs the check command for CI gating.
// It returns ErrGateFailed after writing the result when too many edges were lost.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, w contract.OutputWriter) error {
	start := time.Now()
	result, err := GetGateResults(ctx, cfg)
	if err != nil {
		return err
	}
	if err := w.WriteGate(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("%w: %d edge(s) lost, at most %d allowed", ErrGateFailed, len(result.LostEdges), result.MaxLost)
	}
	return nil
}

// GetTrendResults parses a scenario log and builds its trend series.
func GetTrendResults(ctx context.Context, cfg *contract.Config) (schema.TrendResult, error) {
	if len(cfg.Inputs) != 1 {
		return schema.TrendResult{}, fmt.Errorf("trend needs exactly one log file (received %d)", len(cfg.Inputs))
	}
	logPath := cfg.Inputs[0]
	if !shouldSuppressHeader(ctx) {
		contract.LogTrendHeader(logPath)
	}

	parser, err := NewScenarioParser(cfg.Grammar)
	if err != nil {
		return schema.TrendResult{}, fmt.Errorf("invalid scenario grammar: %w", err)
	}
	parsed, err := parseLogFile(parser, logPath)
	if err != nil {
		return schema.TrendResult{}, err
	}
	if !shouldSuppressHeader(ctx) {
		reportSkippedLines(parsed)
	}

	series, err := BuildTrendSeries(parsed.Records)
	if err != nil {
		return schema.TrendResult{}, fmt.Errorf("%s: %w", logPath, err)
	}
	return schema.TrendResult{
		Series:   series,
		Summary:  SummarizeTrend(series),
		Skipped:  parsed.Skipped,
		Failures: parsed.Failures,
	}, nil
}

func parseLogFile(parser *ScenarioParser, logPath string) (schema.ScenarioParseResult, error) {
	var r io.Reader = os.Stdin
	if logPath != stdinPath {
		f, err := os.Open(logPath)
		if err != nil {
			return schema.ScenarioParseResult{}, fmt.Errorf("cannot open log %s: %w", logPath, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	return parser.Parse(r)
}

// reportSkippedLines warns once in aggregate and then per line, up to a cap.
func reportSkippedLines(parsed schema.ScenarioParseResult) {
	if parsed.Skipped == 0 {
		return
	}
	contract.LogWarn("Skipped scenario lines", fmt.Errorf("%d line(s) had unparsable values", parsed.Skipped))
	for i, failure := range parsed.Failures {
		if i == contract.MaxDetailedWarnings {
			contract.LogInfo("   ... and %d more", len(parsed.Failures)-i)
			break
		}
		contract.LogInfo("   line %d: %s: %s", failure.Line, failure.Field, failure.Err)
	}
}

// ExecuteTrend runs the trend command and writes its result.
// It returns ErrTooManyParseErrors after writing when skipped lines exceed the limit.
func ExecuteTrend(ctx context.Context, cfg *contract.Config, w contract.OutputWriter) error {
	start := time.Now()
	result, err := GetTrendResults(ctx, cfg)
	if err != nil {
		return err
	}
	if err := w.WriteTrend(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if cfg.MaxFailures >= 0 && result.Skipped > cfg.MaxFailures {
		return fmt.Errorf("%w: %d skipped, at most %d allowed", ErrTooManyParseErrors, result.Skipped, cfg.MaxFailures)
	}
	return nil
}

// GetGraphResults builds the service graph of a runtime report.
func GetGraphResults(ctx context.Context, cfg *contract.Config) (schema.ServiceGraph, error) {
	if len(cfg.Inputs) != 1 {
		return schema.ServiceGraph{}, fmt.Errorf("graph needs exactly one report file (received %d)", len(cfg.Inputs))
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogGraphHeader(cfg.Inputs[0], cfg.RuntimeGraphKey)
	}
	return LoadServiceGraphFile(cfg.Inputs[0], cfg.RuntimeGraphKey)
}

// ExecuteGraph runs the graph command and writes its result.
func ExecuteGraph(ctx context.Context, cfg *contract.Config, w contract.OutputWriter) error {
	start := time.Now()
	graph, err := GetGraphResults(ctx, cfg)
	if err != nil {
		return err
	}
	return w.WriteGraph(graph, cfg, time.Since(start))
}

// GetDictResults extracts a fuzzing dictionary from a parameter spec file.
func GetDictResults(ctx context.Context, cfg *contract.Config) ([]schema.DictEntry, error) {
	if len(cfg.Inputs) != 1 {
		return nil, fmt.Errorf("dict needs exactly one parameter spec file (received %d)", len(cfg.Inputs))
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogDictHeader(cfg.Inputs[0])
	}
	specs, err := LoadParamSpecsFile(cfg.Inputs[0])
	if err != nil {
		return nil, err
	}
	return ExtractValidSamples(specs), nil
}

// ExecuteDict runs the dict command and writes its result.
func ExecuteDict(ctx context.Context, cfg *contract.Config, w contract.OutputWriter) error {
	start := time.Now()
	entries, err := GetDictResults(ctx, cfg)
	if err != nil {
		return err
	}
	return w.WriteDict(entries, cfg, time.Since(start))
}
