package schema

import (
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(src, dst string) EdgeKey {
	return EdgeKey{
		SourceService: src, SourceEndpoint: "/api", SourceMethod: "GET",
		TargetService: dst, TargetEndpoint: "/api", TargetMethod: "GET",
	}
}

func TestEdgeKeyCompare(t *testing.T) {
	base := key("A", "B")

	tests := []struct {
		name  string
		other EdgeKey
		want  int
	}{
		{"equal", base, 0},
		{"source service", EdgeKey{SourceService: "B"}, -1},
		{"target method", func() EdgeKey { k := base; k.TargetMethod = "POST"; return k }(), -1},
		{"source endpoint", func() EdgeKey { k := base; k.SourceEndpoint = "/"; return k }(), 1},
		{"case sensitive", func() EdgeKey { k := base; k.TargetService = "b"; return k }(), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Compare(tt.other))
			assert.Equal(t, -tt.want, tt.other.Compare(base))
			assert.Equal(t, tt.want < 0, base.Less(tt.other))
		})
	}
}

func TestEdgeKeyFieldPrecedence(t *testing.T) {
	// The earlier field wins even when later fields point the other way.
	a := EdgeKey{SourceService: "A", TargetMethod: "Z"}
	b := EdgeKey{SourceService: "B", TargetMethod: "A"}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func TestCoverageSnapshot(t *testing.T) {
	edges := map[EdgeKey]EdgeDetail{}
	for _, name := range []string{"C", "A", "B"} {
		k := key(name, "Z")
		edges[k] = EdgeDetail{Key: k, Source: json.RawMessage(`{"serviceName":"` + name + `"}`)}
	}
	s := NewCoverageSnapshot(edges)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(key("A", "Z")))
	assert.False(t, s.Has(key("Z", "A")))

	keys := s.Keys()
	assert.True(t, slices.IsSortedFunc(keys, EdgeKey.Compare))
	assert.Equal(t, "A", keys[0].SourceService)

	details := s.Details()
	require.Len(t, details, 3)
	for i, d := range details {
		assert.Equal(t, keys[i], d.Key)
	}

	d, ok := s.Get(key("B", "Z"))
	require.True(t, ok)
	assert.JSONEq(t, `{"serviceName":"B"}`, string(d.Source))
}

func TestCoverageSnapshotEmpty(t *testing.T) {
	var nilSnapshot *CoverageSnapshot
	for _, s := range []*CoverageSnapshot{nilSnapshot, NewCoverageSnapshot(nil)} {
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Has(key("A", "B")))
		_, ok := s.Get(key("A", "B"))
		assert.False(t, ok)
		assert.NotNil(t, s.Keys())
		assert.Empty(t, s.Details())
	}
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, &StructureError{Path: "finalCallInfoGraph.edges"},
		"structure error: finalCallInfoGraph.edges is missing")
	assert.EqualError(t, &StructureError{Path: "finalCallInfoGraph.edges", Reason: "is not a list"},
		"structure error: finalCallInfoGraph.edges is not a list")
	assert.EqualError(t, &FieldError{Record: "edge 2", Field: "hitCount"},
		"field error: edge 2: hitCount is missing")
	assert.EqualError(t, &EmptyInputError{Operation: "trend"},
		"empty input: trend needs at least one record")
}

func TestFieldErrorUnwrap(t *testing.T) {
	_, parseErr := strconv.Atoi("many")
	err := error(&FieldError{Record: "line 4", Field: "edge_covered_count", Err: parseErr})

	assert.ErrorIs(t, err, strconv.ErrSyntax)
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "line 4", fieldErr.Record)
	assert.Contains(t, err.Error(), "invalid syntax")
}

func TestCompareServiceEdges(t *testing.T) {
	edges := []ServiceEdge{
		{Source: "b", Target: "a", Label: "GET"},
		{Source: "a", Target: "c", Label: "PUT"},
		{Source: "a", Target: "b", Label: "POST"},
	}
	slices.SortFunc(edges, CompareServiceEdges)
	assert.Equal(t, []ServiceEdge{
		{Source: "a", Target: "b", Label: "POST"},
		{Source: "a", Target: "c", Label: "PUT"},
		{Source: "b", Target: "a", Label: "GET"},
	}, edges)
	assert.Equal(t, 0, CompareServiceEdges(ServiceEdge{Source: "a", Target: "b", Label: "X"}, ServiceEdge{Source: "a", Target: "b", Label: "Y"}))
}

func TestDefaultScenarioGrammar(t *testing.T) {
	g := DefaultScenarioGrammar()
	assert.Equal(t, DefaultScenarioMarker, g.Marker)
	fields := make([]ScenarioField, len(g.Fields))
	for i, f := range g.Fields {
		fields[i] = f.Field
	}
	assert.Equal(t, []ScenarioField{FieldUUID, FieldEdgeCoveredCount, FieldEdgeCoverage, FieldStatusCodeCount}, fields)
}

func TestTrendSeriesLen(t *testing.T) {
	assert.Equal(t, 0, TrendSeries{}.Len())
	assert.Equal(t, 2, TrendSeries{EdgeCoveredCount: []int{1, 2}}.Len())
}
