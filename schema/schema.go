// Package schema has configs, models and errors for all parts of edgecov.
package schema

import (
	"cmp"
	"encoding/json"
	"slices"
)

// EdgeKey is the canonical identity of a directed service-call edge.
// Two edges are the same edge iff all six fields match exactly (case-sensitive).
// Hit counts and timestamps never take part in identity.
type EdgeKey struct {
	SourceService  string `json:"source_service" yaml:"source_service"`
	SourceEndpoint string `json:"source_endpoint" yaml:"source_endpoint"`
	SourceMethod   string `json:"source_method" yaml:"source_method"`
	TargetService  string `json:"target_service" yaml:"target_service"`
	TargetEndpoint string `json:"target_endpoint" yaml:"target_endpoint"`
	TargetMethod   string `json:"target_method" yaml:"target_method"`
}

// Compare orders keys lexicographically over the six fields in declaration order.
// It returns -1, 0 or +1.
func (k EdgeKey) Compare(other EdgeKey) int {
	if c := cmp.Compare(k.SourceService, other.SourceService); c != 0 {
		return c
	}
	if c := cmp.Compare(k.SourceEndpoint, other.SourceEndpoint); c != 0 {
		return c
	}
	if c := cmp.Compare(k.SourceMethod, other.SourceMethod); c != 0 {
		return c
	}
	if c := cmp.Compare(k.TargetService, other.TargetService); c != 0 {
		return c
	}
	if c := cmp.Compare(k.TargetEndpoint, other.TargetEndpoint); c != 0 {
		return c
	}
	return cmp.Compare(k.TargetMethod, other.TargetMethod)
}

// Less reports whether k sorts before other.
func (k EdgeKey) Less(other EdgeKey) bool {
	return k.Compare(other) < 0
}

// EdgeDetail is the full source/target descriptor of one covered edge.
// Source and Target hold the report's objects verbatim, so any extra
// descriptive fields survive into the diff output.
type EdgeDetail struct {
	Key    EdgeKey         `json:"-" yaml:"-"`
	Source json.RawMessage `json:"source" yaml:"-"`
	Target json.RawMessage `json:"target" yaml:"-"`
}

// CoverageSnapshot maps EdgeKey to EdgeDetail for the covered edges of one report.
// It is built once by the loader and never mutated afterwards.
type CoverageSnapshot struct {
	edges map[EdgeKey]EdgeDetail
}

// NewCoverageSnapshot wraps an already filtered edge map.
// The snapshot takes ownership of the map; callers must not modify it afterwards.
func NewCoverageSnapshot(edges map[EdgeKey]EdgeDetail) *CoverageSnapshot {
	if edges == nil {
		edges = make(map[EdgeKey]EdgeDetail)
	}
	return &CoverageSnapshot{edges: edges}
}

// Len returns the number of covered edges.
func (s *CoverageSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.edges)
}

// Has reports whether the key is covered in this snapshot.
func (s *CoverageSnapshot) Has(key EdgeKey) bool {
	if s == nil {
		return false
	}
	_, ok := s.edges[key]
	return ok
}

// Get returns the detail for a key.
func (s *CoverageSnapshot) Get(key EdgeKey) (EdgeDetail, bool) {
	if s == nil {
		return EdgeDetail{}, false
	}
	d, ok := s.edges[key]
	return d, ok
}

// Keys returns all keys in EdgeKey order.
func (s *CoverageSnapshot) Keys() []EdgeKey {
	if s == nil {
		return []EdgeKey{}
	}
	keys := make([]EdgeKey, 0, len(s.edges))
	for k := range s.edges {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, EdgeKey.Compare)
	return keys
}

// Details returns all edge details in EdgeKey order.
func (s *CoverageSnapshot) Details() []EdgeDetail {
	keys := s.Keys()
	details := make([]EdgeDetail, len(keys))
	for i, k := range keys {
		details[i] = s.edges[k]
	}
	return details
}
