// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/internal/parquet"
	"github.com/huangsam/edgecov/internal/store"
	"github.com/huangsam/edgecov/schema"
)

// OutWriter provides a unified interface for all output operations.
// Stream formats go through the Write*Results functions; parquet and sqlite
// are handed to their exporters.
type OutWriter struct{}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDiff prints a coverage diff using the configured output format.
func (ow *OutWriter) WriteDiff(result schema.DiffResult, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, "diff", exporters{
		parquet: func(path string) error { return parquet.WriteDiffParquet(result, path) },
		sqlite:  func(s *store.Store) error { return s.SaveDiff(result) },
	}, func(w io.Writer) error {
		return WriteDiffResults(w, result, cfg, duration)
	})
}

// WriteGate prints a regression check outcome using the configured output format.
func (ow *OutWriter) WriteGate(result schema.GateResult, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, "check", exporters{
		parquet: func(path string) error { return parquet.WriteGateParquet(result, path) },
		sqlite:  func(s *store.Store) error { return s.SaveGate(result) },
	}, func(w io.Writer) error {
		return WriteGateResults(w, result, cfg, duration)
	})
}

// WriteTrend prints a scenario trend using the configured output format.
func (ow *OutWriter) WriteTrend(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, "trend", exporters{
		parquet: func(path string) error { return parquet.WriteTrendParquet(result, path) },
		sqlite:  func(s *store.Store) error { return s.SaveTrend(result) },
	}, func(w io.Writer) error {
		return WriteTrendResults(w, result, cfg, duration)
	})
}

// WriteGraph prints a service graph using the configured output format.
func (ow *OutWriter) WriteGraph(graph schema.ServiceGraph, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, "graph", exporters{
		parquet: func(path string) error { return parquet.WriteGraphParquet(graph, path) },
		sqlite:  func(s *store.Store) error { return s.SaveGraph(graph) },
	}, func(w io.Writer) error {
		return WriteGraphResults(w, graph, cfg, duration)
	})
}

// WriteDict prints dictionary entries using the configured output format.
func (ow *OutWriter) WriteDict(entries []schema.DictEntry, cfg *contract.Config, duration time.Duration) error {
	return dispatch(cfg, "dictionary", exporters{
		parquet: func(path string) error { return parquet.WriteDictParquet(entries, path) },
		sqlite:  func(s *store.Store) error { return s.SaveDict(entries) },
	}, func(w io.Writer) error {
		return WriteDictResults(w, entries, cfg, duration)
	})
}

// exporters are the file-only sinks of one result.
type exporters struct {
	parquet func(path string) error
	sqlite  func(s *store.Store) error
}

// dispatch routes a result to its file-only exporter or to a stream writer.
func dispatch(cfg *contract.Config, what string, ex exporters, stream func(io.Writer) error) error {
	switch cfg.Output {
	case schema.ParquetOut:
		return writeExport(cfg, fmt.Sprintf("Wrote Parquet %s results", what), ex.parquet)
	case schema.SQLiteOut:
		return writeExport(cfg, fmt.Sprintf("Wrote SQLite %s results", what), func(path string) error {
			return store.Export(path, ex.sqlite)
		})
	default:
		return writeWithFile(cfg.OutputFile, stream, fmt.Sprintf("Wrote %s %s results", cfg.Output, what))
	}
}

// writeExport runs a file-only exporter against the configured output file.
func writeExport(cfg *contract.Config, successMsg string, export func(path string) error) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("%s output requires an output file", cfg.Output)
	}
	if err := export(cfg.OutputFile); err != nil {
		return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
	}
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, cfg.OutputFile)
	return nil
}
