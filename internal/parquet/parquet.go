// Package parquet provides row types and functions for exporting edgecov
// results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/edgecov/schema"
	"github.com/parquet-go/parquet-go"
)

// Side values for DiffEdge rows.
const (
	SideOnlyInFile1 = "only_in_file1"
	SideOnlyInFile2 = "only_in_file2"
	SideLost        = "lost"
)

// DiffEdge is one edge that appears on a single side of a diff.
type DiffEdge struct {
	// Side is only_in_file1, only_in_file2 or lost
	Side string `parquet:"side,snappy,dict"`

	SourceService  string `parquet:"source_service,snappy,dict"`
	SourceEndpoint string `parquet:"source_endpoint,snappy"`
	SourceMethod   string `parquet:"source_method,snappy,dict"`
	TargetService  string `parquet:"target_service,snappy,dict"`
	TargetEndpoint string `parquet:"target_endpoint,snappy"`
	TargetMethod   string `parquet:"target_method,snappy,dict"`

	// SourceJSON and TargetJSON keep the report objects verbatim
	SourceJSON string `parquet:"source_json,snappy"`
	TargetJSON string `parquet:"target_json,snappy"`
}

// TrendPoint is one scenario of a trend series.
type TrendPoint struct {
	// Index is the 1-based position of the scenario in the log
	Index            int32   `parquet:"index,snappy"`
	UUID             string  `parquet:"uuid,snappy"`
	EdgeCoveredCount int64   `parquet:"edge_covered_count,snappy"`
	EdgeCoverage     float64 `parquet:"edge_coverage,snappy"`
	StatusCodeCount  int64   `parquet:"status_code_count,snappy"`
}

// GraphEdge is one service dependency.
type GraphEdge struct {
	Source string `parquet:"source,snappy,dict"`
	Target string `parquet:"target,snappy,dict"`
	Label  string `parquet:"label,snappy,dict"`
}

// DictValue is one fuzzing dictionary entry.
type DictValue struct {
	Position int32  `parquet:"position,snappy"`
	Name     string `parquet:"name,snappy,dict"`
	Value    string `parquet:"value,snappy"`
}

// writeRows writes rows to a new Parquet file, inferring the schema from T.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertDiffEdges flattens edge details into rows tagged with side.
func ConvertDiffEdges(side string, edges []schema.EdgeDetail) []DiffEdge {
	rows := make([]DiffEdge, len(edges))
	for i, e := range edges {
		k := e.Key
		rows[i] = DiffEdge{
			Side:           side,
			SourceService:  k.SourceService,
			SourceEndpoint: k.SourceEndpoint,
			SourceMethod:   k.SourceMethod,
			TargetService:  k.TargetService,
			TargetEndpoint: k.TargetEndpoint,
			TargetMethod:   k.TargetMethod,
			SourceJSON:     string(e.Source),
			TargetJSON:     string(e.Target),
		}
	}
	return rows
}

// ConvertTrendSeries turns the parallel series into one row per scenario.
func ConvertTrendSeries(series schema.TrendSeries) []TrendPoint {
	rows := make([]TrendPoint, series.Len())
	for i := range rows {
		var uuid string
		if i < len(series.UUIDs) {
			uuid = series.UUIDs[i]
		}
		rows[i] = TrendPoint{
			Index:            int32(i + 1),
			UUID:             uuid,
			EdgeCoveredCount: int64(series.EdgeCoveredCount[i]),
			EdgeCoverage:     series.EdgeCoverage[i],
			StatusCodeCount:  int64(series.StatusCodeCount[i]),
		}
	}
	return rows
}

// ConvertServiceEdges converts graph edges to rows.
func ConvertServiceEdges(edges []schema.ServiceEdge) []GraphEdge {
	rows := make([]GraphEdge, len(edges))
	for i, e := range edges {
		rows[i] = GraphEdge(e)
	}
	return rows
}

// ConvertDictEntries converts dictionary entries to rows, keeping their order.
func ConvertDictEntries(entries []schema.DictEntry) []DictValue {
	rows := make([]DictValue, len(entries))
	for i, e := range entries {
		rows[i] = DictValue{Position: int32(i + 1), Name: e.Name, Value: e.Value}
	}
	return rows
}

// WriteDiffParquet writes both sides of a diff to one file.
func WriteDiffParquet(result schema.DiffResult, outputPath string) error {
	rows := ConvertDiffEdges(SideOnlyInFile1, result.OnlyInFile1)
	rows = append(rows, ConvertDiffEdges(SideOnlyInFile2, result.OnlyInFile2)...)
	return writeRows(rows, outputPath)
}

// WriteGateParquet writes the lost edges of a regression check.
func WriteGateParquet(result schema.GateResult, outputPath string) error {
	return writeRows(ConvertDiffEdges(SideLost, result.LostEdges), outputPath)
}

// WriteTrendParquet writes a trend series.
func WriteTrendParquet(result schema.TrendResult, outputPath string) error {
	return writeRows(ConvertTrendSeries(result.Series), outputPath)
}

// WriteGraphParquet writes the edges of a service graph.
func WriteGraphParquet(graph schema.ServiceGraph, outputPath string) error {
	return writeRows(ConvertServiceEdges(graph.Edges), outputPath)
}

// WriteDictParquet writes dictionary entries.
func WriteDictParquet(entries []schema.DictEntry, outputPath string) error {
	return writeRows(ConvertDictEntries(entries), outputPath)
}
