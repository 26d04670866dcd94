package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/edgecov/schema"
	"github.com/tidwall/gjson"
)

// Identity paths of an edge record, relative to the edge object.
var edgeKeyPaths = [6]string{
	"source.serviceName",
	"source.simpleAPIMethod.endpoint",
	"source.simpleAPIMethod.method",
	"target.serviceName",
	"target.simpleAPIMethod.endpoint",
	"target.simpleAPIMethod.method",
}

var errNotString = errors.New("is not a string")

// ParseReport validates raw report bytes and returns the parsed document.
func ParseReport(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("report is not valid JSON")
	}
	return gjson.ParseBytes(data), nil
}

// readReport reads and parses a report file.
func readReport(path string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("cannot read report %s: %w", path, err)
	}
	report, err := ParseReport(data)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

// LoadSnapshotFile reads a report from disk and loads its covered edges.
func LoadSnapshotFile(path, graphKey string) (*schema.CoverageSnapshot, error) {
	report, err := readReport(path)
	if err != nil {
		return nil, err
	}
	snapshot, err := LoadSnapshot(report, graphKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}

// LoadSnapshot builds a CoverageSnapshot from the edge list under graphKey.
// Only edges with a hit count above zero are kept. Records that fail the hit
// count check are never inspected further. A repeated key keeps the detail of
// its last occurrence.
func LoadSnapshot(report gjson.Result, graphKey string) (*schema.CoverageSnapshot, error) {
	edges, err := edgeList(report, graphKey)
	if err != nil {
		return nil, err
	}

	covered := make(map[schema.EdgeKey]schema.EdgeDetail)
	for i, edge := range edges.Array() {
		record := fmt.Sprintf("%s.edges[%d]", graphKey, i)
		hits, err := hitCount(edge, record)
		if err != nil {
			return nil, err
		}
		if hits <= 0 {
			continue
		}
		key, err := edgeKeyOf(edge, record)
		if err != nil {
			return nil, err
		}
		covered[key] = schema.EdgeDetail{
			Key:    key,
			Source: json.RawMessage(edge.Get("source").Raw),
			Target: json.RawMessage(edge.Get("target").Raw),
		}
	}
	return schema.NewCoverageSnapshot(covered), nil
}

// edgeList returns the edges array of the graph container, or a StructureError.
func edgeList(report gjson.Result, graphKey string) (gjson.Result, error) {
	graph := report.Get(graphKey)
	if !graph.IsObject() {
		return gjson.Result{}, &schema.StructureError{Path: graphKey}
	}
	edges := graph.Get("edges")
	if !edges.IsArray() {
		return gjson.Result{}, &schema.StructureError{Path: graphKey + ".edges"}
	}
	return edges, nil
}

// hitCount reads the optional hitCount of an edge. Absent or null counts as zero.
func hitCount(edge gjson.Result, record string) (float64, error) {
	hits := edge.Get("hitCount")
	switch hits.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		return hits.Num, nil
	default:
		return 0, &schema.FieldError{Record: record, Field: "hitCount", Err: errors.New("is not a number")}
	}
}

// edgeKeyOf extracts the six identity fields of an edge.
func edgeKeyOf(edge gjson.Result, record string) (schema.EdgeKey, error) {
	var fields [6]string
	for i, path := range edgeKeyPaths {
		value, err := requiredString(edge, path, record)
		if err != nil {
			return schema.EdgeKey{}, err
		}
		fields[i] = value
	}
	return schema.EdgeKey{
		SourceService:  fields[0],
		SourceEndpoint: fields[1],
		SourceMethod:   fields[2],
		TargetService:  fields[3],
		TargetEndpoint: fields[4],
		TargetMethod:   fields[5],
	}, nil
}

// requiredString returns the string at path or a FieldError when it is missing or not a string.
func requiredString(obj gjson.Result, path, record string) (string, error) {
	value := obj.Get(path)
	if !value.Exists() || value.Type == gjson.Null {
		return "", &schema.FieldError{Record: record, Field: path}
	}
	if value.Type != gjson.String {
		return "", &schema.FieldError{Record: record, Field: path, Err: errNotString}
	}
	return value.Str, nil
}
