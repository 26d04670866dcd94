package schema

// GateResult holds the outcome of a coverage regression check.
// LostEdges are covered by the baseline but not by the candidate.
type GateResult struct {
	Passed      bool         `json:"passed" yaml:"passed"`
	MaxLost     int          `json:"max_lost" yaml:"max_lost"`
	LostEdges   []EdgeDetail `json:"lost_edges" yaml:"-"`
	GainedEdges int          `json:"gained_edges" yaml:"gained_edges"`
	Summary     DiffSummary  `json:"summary" yaml:"summary"`
}
