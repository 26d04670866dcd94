package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/edgecov/schema"
	"github.com/stretchr/testify/require"
)

// testEdge is one raw edge record of a generated report.
type testEdge struct {
	Key  schema.EdgeKey
	Hits *int // nil leaves hitCount out of the record
}

func hits(n int) *int {
	return &n
}

func edgeKey(srcSvc, srcEp, srcMethod, dstSvc, dstEp, dstMethod string) schema.EdgeKey {
	return schema.EdgeKey{
		SourceService:  srcSvc,
		SourceEndpoint: srcEp,
		SourceMethod:   srcMethod,
		TargetService:  dstSvc,
		TargetEndpoint: dstEp,
		TargetMethod:   dstMethod,
	}
}

func edgeRecord(e testEdge) map[string]any {
	record := map[string]any{
		"source": map[string]any{
			"serviceName":     e.Key.SourceService,
			"simpleAPIMethod": map[string]any{"endpoint": e.Key.SourceEndpoint, "method": e.Key.SourceMethod, "type": "REST"},
		},
		"target": map[string]any{
			"serviceName":     e.Key.TargetService,
			"simpleAPIMethod": map[string]any{"endpoint": e.Key.TargetEndpoint, "method": e.Key.TargetMethod, "type": "REST"},
		},
	}
	if e.Hits != nil {
		record["hitCount"] = *e.Hits
	}
	return record
}

// reportJSON renders edges under graphKey the way the fuzzer writes its reports.
func reportJSON(graphKey string, edges ...testEdge) []byte {
	records := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		records = append(records, edgeRecord(e))
	}
	data, err := json.Marshal(map[string]any{
		graphKey: map[string]any{"edges": records},
	})
	if err != nil {
		panic(fmt.Sprintf("cannot marshal test report: %v", err))
	}
	return data
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func mustLoad(t *testing.T, data []byte) *schema.CoverageSnapshot {
	t.Helper()
	report, err := ParseReport(data)
	require.NoError(t, err)
	snapshot, err := LoadSnapshot(report, schema.CallInfoGraphKey)
	require.NoError(t, err)
	return snapshot
}

// snapshotOf builds a snapshot directly from keys.
func snapshotOf(keys []schema.EdgeKey) *schema.CoverageSnapshot {
	edges := make(map[schema.EdgeKey]schema.EdgeDetail, len(keys))
	for _, k := range keys {
		source, _ := json.Marshal(map[string]string{"serviceName": k.SourceService})
		target, _ := json.Marshal(map[string]string{"serviceName": k.TargetService})
		edges[k] = schema.EdgeDetail{Key: k, Source: source, Target: target}
	}
	return schema.NewCoverageSnapshot(edges)
}

func detailKeys(details []schema.EdgeDetail) []schema.EdgeKey {
	keys := make([]schema.EdgeKey, len(details))
	for i, d := range details {
		keys[i] = d.Key
	}
	return keys
}

func scenarioLine(r schema.ScenarioRecord) string {
	return fmt.Sprintf(
		"2024-05-01 10:00:00.123 INFO [fuzz-worker-1] Finish execute current test scenario, UUID: %s, Edge covered count: %d, Edge coverage: %v, covered status code count: %d",
		r.UUID, r.EdgeCoveredCount, r.EdgeCoverage, r.StatusCodeCount,
	)
}

func defaultParser(t *testing.T) *ScenarioParser {
	t.Helper()
	parser, err := NewScenarioParser(schema.DefaultScenarioGrammar())
	require.NoError(t, err)
	return parser
}
