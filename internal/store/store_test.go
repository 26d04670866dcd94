package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/edgecov/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Create(filepath.Join(t.TempDir(), "export.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func detail(src, dst string) schema.EdgeDetail {
	return schema.EdgeDetail{
		Key: schema.EdgeKey{
			SourceService: src, SourceEndpoint: "/", SourceMethod: "GET",
			TargetService: dst, TargetEndpoint: "/", TargetMethod: "GET",
		},
		Source: json.RawMessage(`{"serviceName":"` + src + `"}`),
		Target: json.RawMessage(`{"serviceName":"` + dst + `"}`),
	}
}

func TestCreateReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0o644))

	s, err := Create(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	assert.Equal(t, path, s.Path())
	assert.Equal(t, 0, count(t, s.db, `SELECT COUNT(*) FROM diff_edges`))
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, migrateUp(s.db))
}

func TestSaveDiff(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveDiff(schema.DiffResult{
		OnlyInFile1: []schema.EdgeDetail{detail("A", "B"), detail("A", "C")},
		OnlyInFile2: []schema.EdgeDetail{detail("B", "C")},
	}))

	assert.Equal(t, 2, count(t, s.db, `SELECT COUNT(*) FROM diff_edges WHERE side = ?`, SideOnlyInFile1))
	assert.Equal(t, 1, count(t, s.db, `SELECT COUNT(*) FROM diff_edges WHERE side = ?`, SideOnlyInFile2))

	var sourceJSON string
	require.NoError(t, s.db.QueryRow(`SELECT source_json FROM diff_edges WHERE side = ?`, SideOnlyInFile2).Scan(&sourceJSON))
	assert.JSONEq(t, `{"serviceName":"B"}`, sourceJSON)
}

func TestSaveGate(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveGate(schema.GateResult{
		Passed:      false,
		MaxLost:     0,
		LostEdges:   []schema.EdgeDetail{detail("A", "B")},
		GainedEdges: 2,
		Summary:     schema.DiffSummary{File1Covered: 3, File2Covered: 4},
	}))

	var passed bool
	var lost, gained, baseline int
	require.NoError(t, s.db.QueryRow(`SELECT passed, lost_edges, gained_edges, baseline_covered FROM gate_results`).
		Scan(&passed, &lost, &gained, &baseline))
	assert.False(t, passed)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, baseline)
	assert.Equal(t, 1, count(t, s.db, `SELECT COUNT(*) FROM diff_edges WHERE side = ?`, SideLost))
}

func TestSaveTrend(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveTrend(schema.TrendResult{
		Series: schema.TrendSeries{
			UUIDs:            []string{"aa-01", "aa-02"},
			EdgeCoveredCount: []int{3, 5},
			EdgeCoverage:     []float64{0.3, 0.5},
			StatusCodeCount:  []int{1, 2},
		},
		Skipped:  1,
		Failures: []schema.LineFailure{{Line: 7, Field: "edge_covered_count", Err: "invalid syntax"}},
	}))

	assert.Equal(t, 2, count(t, s.db, `SELECT COUNT(*) FROM scenario_points`))

	var uuid string
	var coverage float64
	require.NoError(t, s.db.QueryRow(`SELECT uuid, edge_coverage FROM scenario_points WHERE idx = 2`).Scan(&uuid, &coverage))
	assert.Equal(t, "aa-02", uuid)
	assert.InDelta(t, 0.5, coverage, 1e-9)

	assert.Equal(t, 1, count(t, s.db, `SELECT COUNT(*) FROM scenario_failures WHERE line = 7`))
}

func TestSaveGraphAndDict(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveGraph(schema.ServiceGraph{
		Nodes: []string{"A", "B"},
		Edges: []schema.ServiceEdge{{Source: "A", Target: "B", Label: "GET"}},
	}))
	require.NoError(t, s.SaveDict([]schema.DictEntry{{Name: "id", Value: "1"}, {Name: "id", Value: "2"}}))

	assert.Equal(t, 2, count(t, s.db, `SELECT COUNT(*) FROM service_nodes`))
	assert.Equal(t, 1, count(t, s.db, `SELECT COUNT(*) FROM service_edges WHERE label = 'GET'`))

	var value string
	require.NoError(t, s.db.QueryRow(`SELECT value FROM dict_entries WHERE position = 2`).Scan(&value))
	assert.Equal(t, "2", value)
}

func TestSaveGraphRollsBackOnDuplicate(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveGraph(schema.ServiceGraph{Nodes: []string{"A", "A"}})
	assert.Error(t, err)
	assert.Equal(t, 0, count(t, s.db, `SELECT COUNT(*) FROM service_nodes`))
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.db")
	require.NoError(t, Export(path, func(s *Store) error {
		return s.SaveDict([]schema.DictEntry{{Name: "id", Value: "x"}})
	}))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	assert.Error(t, Export(filepath.Join(t.TempDir(), "missing", "dir", "x.db"), func(*Store) error { return nil }))
}
