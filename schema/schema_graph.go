package schema

import "cmp"

// ServiceEdge is a service-level dependency, labelled with the called method.
type ServiceEdge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label" yaml:"label"`
}

// ServiceGraph is the service dependency graph of a runtime report.
type ServiceGraph struct {
	Nodes []string      `json:"nodes" yaml:"nodes"`
	Edges []ServiceEdge `json:"edges" yaml:"edges"`
}

// CompareServiceEdges orders service edges by source, then target.
func CompareServiceEdges(a, b ServiceEdge) int {
	if c := cmp.Compare(a.Source, b.Source); c != 0 {
		return c
	}
	return cmp.Compare(a.Target, b.Target)
}
