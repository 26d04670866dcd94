package core

import (
	"github.com/huangsam/edgecov/schema"
)

// DiffSnapshots computes the asymmetric set differences between two snapshots.
// Membership is decided by EdgeKey alone and details come from the owning snapshot.
// Both lists are sorted by EdgeKey and are empty, not nil, when nothing differs.
func DiffSnapshots(a, b *schema.CoverageSnapshot) schema.DiffResult {
	onlyInA := subtractSnapshot(a, b)
	onlyInB := subtractSnapshot(b, a)
	return schema.DiffResult{
		OnlyInFile1: onlyInA,
		OnlyInFile2: onlyInB,
		Summary: schema.DiffSummary{
			File1Covered: a.Len(),
			File2Covered: b.Len(),
			Shared:       a.Len() - len(onlyInA),
			OnlyInFile1:  len(onlyInA),
			OnlyInFile2:  len(onlyInB),
		},
	}
}

// subtractSnapshot returns the details of keys in a that are not in b.
func subtractSnapshot(a, b *schema.CoverageSnapshot) []schema.EdgeDetail {
	result := make([]schema.EdgeDetail, 0)
	for _, key := range a.Keys() {
		if b.Has(key) {
			continue
		}
		detail, _ := a.Get(key)
		result = append(result, detail)
	}
	return result
}
