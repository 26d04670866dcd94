// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/edgecov/schema"
)

// OutputWriter renders command results in the configured output format.
// This allows the core orchestration to be tested without touching stdout or files.
type OutputWriter interface {
	// WriteDiff renders the edges covered by only one of two reports.
	WriteDiff(result schema.DiffResult, cfg *Config, duration time.Duration) error

	// WriteGate renders the outcome of a coverage regression check.
	WriteGate(result schema.GateResult, cfg *Config, duration time.Duration) error

	// WriteTrend renders the per-scenario metric series and its summary.
	WriteTrend(result schema.TrendResult, cfg *Config, duration time.Duration) error

	// WriteGraph renders a service dependency graph.
	WriteGraph(graph schema.ServiceGraph, cfg *Config, duration time.Duration) error

	// WriteDict renders a fuzzing dictionary.
	WriteDict(entries []schema.DictEntry, cfg *Config, duration time.Duration) error
}
