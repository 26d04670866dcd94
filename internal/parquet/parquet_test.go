package parquet

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/huangsam/edgecov/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowStructTags(t *testing.T) {
	tests := []struct {
		name    string
		row     any
		columns []string
	}{
		{"DiffEdge", new(DiffEdge), []string{
			"side", "source_service", "source_endpoint", "source_method",
			"target_service", "target_endpoint", "target_method", "source_json", "target_json",
		}},
		{"TrendPoint", new(TrendPoint), []string{"index", "uuid", "edge_covered_count", "edge_coverage", "status_code_count"}},
		{"GraphEdge", new(GraphEdge), []string{"source", "target", "label"}},
		{"DictValue", new(DictValue), []string{"position", "name", "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.row)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				_, ok := s.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func edgeDetail(src, dst string) schema.EdgeDetail {
	return schema.EdgeDetail{
		Key: schema.EdgeKey{
			SourceService: src, SourceEndpoint: "/a", SourceMethod: "GET",
			TargetService: dst, TargetEndpoint: "/b", TargetMethod: "POST",
		},
		Source: json.RawMessage(`{"serviceName":"` + src + `"}`),
		Target: json.RawMessage(`{"serviceName":"` + dst + `"}`),
	}
}

func TestWriteDiffParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "diff.parquet")
	result := schema.DiffResult{
		OnlyInFile1: []schema.EdgeDetail{edgeDetail("A", "B")},
		OnlyInFile2: []schema.EdgeDetail{edgeDetail("B", "C"), edgeDetail("C", "D")},
	}
	require.NoError(t, WriteDiffParquet(result, outputPath))

	rows, err := parquet.ReadFile[DiffEdge](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, SideOnlyInFile1, rows[0].Side)
	assert.Equal(t, "A", rows[0].SourceService)
	assert.Equal(t, "POST", rows[0].TargetMethod)
	assert.Equal(t, `{"serviceName":"A"}`, rows[0].SourceJSON)
	assert.Equal(t, SideOnlyInFile2, rows[2].Side)
}

func TestWriteGateParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "gate.parquet")
	require.NoError(t, WriteGateParquet(schema.GateResult{LostEdges: []schema.EdgeDetail{edgeDetail("A", "B")}}, outputPath))

	rows, err := parquet.ReadFile[DiffEdge](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, SideLost, rows[0].Side)
}

func TestWriteTrendParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "trend.parquet")
	series := schema.TrendSeries{
		UUIDs:            []string{"aa-01", "aa-02"},
		EdgeCoveredCount: []int{3, 5},
		EdgeCoverage:     []float64{0.3, 0.5},
		StatusCodeCount:  []int{1, 2},
	}
	require.NoError(t, WriteTrendParquet(schema.TrendResult{Series: series}, outputPath))

	rows, err := parquet.ReadFile[TrendPoint](outputPath)
	require.NoError(t, err)
	assert.Equal(t, []TrendPoint{
		{Index: 1, UUID: "aa-01", EdgeCoveredCount: 3, EdgeCoverage: 0.3, StatusCodeCount: 1},
		{Index: 2, UUID: "aa-02", EdgeCoveredCount: 5, EdgeCoverage: 0.5, StatusCodeCount: 2},
	}, rows)
}

func TestWriteGraphAndDictParquet(t *testing.T) {
	dir := t.TempDir()

	graphPath := filepath.Join(dir, "graph.parquet")
	edges := []schema.ServiceEdge{{Source: "A", Target: "B", Label: "GET"}}
	require.NoError(t, WriteGraphParquet(schema.ServiceGraph{Nodes: []string{"A", "B"}, Edges: edges}, graphPath))
	graphRows, err := parquet.ReadFile[GraphEdge](graphPath)
	require.NoError(t, err)
	assert.Equal(t, []GraphEdge{{Source: "A", Target: "B", Label: "GET"}}, graphRows)

	dictPath := filepath.Join(dir, "dict.parquet")
	require.NoError(t, WriteDictParquet([]schema.DictEntry{{Name: "id", Value: "x"}, {Name: "id", Value: "y"}}, dictPath))
	dictRows, err := parquet.ReadFile[DictValue](dictPath)
	require.NoError(t, err)
	assert.Equal(t, []DictValue{{Position: 1, Name: "id", Value: "x"}, {Position: 2, Name: "id", Value: "y"}}, dictRows)
}

func TestWriteParquetEmptyAndInvalidPath(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteDictParquet(nil, outputPath))
	rows, err := parquet.ReadFile[DictValue](outputPath)
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = WriteDictParquet(nil, filepath.Join(t.TempDir(), "missing", "dict.parquet"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
