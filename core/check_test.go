package core

import (
	"testing"

	"github.com/huangsam/edgecov/schema"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateGate(t *testing.T) {
	lostA := edgeKey("A", "/x", "GET", "B", "/y", "GET")
	lostB := edgeKey("A", "/x", "GET", "C", "/z", "GET")
	gained := edgeKey("B", "/y", "GET", "C", "/z", "GET")
	baseline := snapshotOf([]schema.EdgeKey{lostA, lostB})
	candidate := snapshotOf([]schema.EdgeKey{gained})
	diff := DiffSnapshots(baseline, candidate)

	tests := []struct {
		name    string
		maxLost int
		passed  bool
	}{
		{"no tolerance", 0, false},
		{"tolerates one", 1, false},
		{"tolerates both", 2, true},
		{"generous", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateGate(diff, tt.maxLost)
			assert.Equal(t, tt.passed, result.Passed)
			assert.Equal(t, tt.maxLost, result.MaxLost)
			assert.Equal(t, []schema.EdgeKey{lostA, lostB}, detailKeys(result.LostEdges))
			assert.Equal(t, 1, result.GainedEdges)
			assert.Equal(t, diff.Summary, result.Summary)
		})
	}
}

func TestEvaluateGateNoLoss(t *testing.T) {
	s := snapshotOf([]schema.EdgeKey{edgeKey("A", "/x", "GET", "B", "/y", "GET")})
	result := EvaluateGate(DiffSnapshots(s, s), 0)
	assert.True(t, result.Passed)
	assert.NotNil(t, result.LostEdges)
	assert.Empty(t, result.LostEdges)
}
