package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/edgecov/schema"
	"github.com/tidwall/gjson"
)

type servicePair struct {
	source, target string
}

// BuildServiceGraph collapses the endpoint edges under graphKey into a
// service dependency graph. Every edge is used regardless of its hit count.
// When several edges connect the same two services, the last one's target
// method becomes the label.
func BuildServiceGraph(report gjson.Result, graphKey string) (schema.ServiceGraph, error) {
	edges, err := edgeList(report, graphKey)
	if err != nil {
		return schema.ServiceGraph{}, err
	}

	nodes := make(map[string]struct{})
	labels := make(map[servicePair]string)
	for i, edge := range edges.Array() {
		record := fmt.Sprintf("%s.edges[%d]", graphKey, i)
		source, err := requiredString(edge, "source.serviceName", record)
		if err != nil {
			return schema.ServiceGraph{}, err
		}
		target, err := requiredString(edge, "target.serviceName", record)
		if err != nil {
			return schema.ServiceGraph{}, err
		}
		method, err := requiredString(edge, "target.simpleAPIMethod.method", record)
		if err != nil {
			return schema.ServiceGraph{}, err
		}
		nodes[source] = struct{}{}
		nodes[target] = struct{}{}
		labels[servicePair{source, target}] = method
	}

	graph := schema.ServiceGraph{
		Nodes: make([]string, 0, len(nodes)),
		Edges: make([]schema.ServiceEdge, 0, len(labels)),
	}
	for node := range nodes {
		graph.Nodes = append(graph.Nodes, node)
	}
	slices.Sort(graph.Nodes)
	for pair, label := range labels {
		graph.Edges = append(graph.Edges, schema.ServiceEdge{Source: pair.source, Target: pair.target, Label: label})
	}
	slices.SortFunc(graph.Edges, schema.CompareServiceEdges)
	return graph, nil
}

// LoadServiceGraphFile reads a runtime report and builds its service graph.
func LoadServiceGraphFile(path, graphKey string) (schema.ServiceGraph, error) {
	report, err := readReport(path)
	if err != nil {
		return schema.ServiceGraph{}, err
	}
	graph, err := BuildServiceGraph(report, graphKey)
	if err != nil {
		return schema.ServiceGraph{}, fmt.Errorf("%s: %w", path, err)
	}
	return graph, nil
}
