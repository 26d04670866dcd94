package core

import (
	"github.com/huangsam/edgecov/schema"
)

// EvaluateGate checks a baseline-versus-candidate diff for lost coverage.
// OnlyInFile1 holds edges the candidate no longer covers; the gate passes
// while their number stays within maxLost.
func EvaluateGate(diff schema.DiffResult, maxLost int) schema.GateResult {
	lost := diff.OnlyInFile1
	if lost == nil {
		lost = make([]schema.EdgeDetail, 0)
	}
	return schema.GateResult{
		Passed:      len(lost) <= maxLost,
		MaxLost:     maxLost,
		LostEdges:   lost,
		GainedEdges: len(diff.OnlyInFile2),
		Summary:     diff.Summary,
	}
}
