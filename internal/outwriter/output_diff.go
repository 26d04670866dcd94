package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/schema"
)

// Fixed columns of an edge table: side plus service and method on both ends.
const edgeTableFixedWidth = 50

// edgeCSVHeader is shared by the diff and check CSV outputs.
var edgeCSVHeader = []string{
	"side",
	"source_service",
	"source_endpoint",
	"source_method",
	"target_service",
	"target_endpoint",
	"target_method",
}

// WriteDiffResults outputs a coverage diff, dispatching based on the output format configured.
func WriteDiffResults(w io.Writer, result schema.DiffResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAMLResultsForDiff(w, result); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForDiff(w, result); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeDiffTable(w, result, cfg, duration)
	}
	return nil
}

func writeYAMLResultsForDiff(w io.Writer, result schema.DiffResult) error {
	only1, err := toYAMLEdges(result.OnlyInFile1)
	if err != nil {
		return err
	}
	only2, err := toYAMLEdges(result.OnlyInFile2)
	if err != nil {
		return err
	}
	return writeYAML(w, struct {
		OnlyInFile1 []yamlEdge `yaml:"only_in_file1"`
		OnlyInFile2 []yamlEdge `yaml:"only_in_file2"`
	}{only1, only2})
}

func writeCSVResultsForDiff(w io.Writer, result schema.DiffResult) error {
	return writeCSVWithHeader(w, edgeCSVHeader, func(cw *csv.Writer) error {
		if err := writeEdgeRows(cw, "only_in_file1", result.OnlyInFile1); err != nil {
			return err
		}
		return writeEdgeRows(cw, "only_in_file2", result.OnlyInFile2)
	})
}

// writeEdgeRows writes one CSV row per edge.
func writeEdgeRows(cw *csv.Writer, side string, edges []schema.EdgeDetail) error {
	for _, e := range edges {
		k := e.Key
		row := []string{
			side,
			k.SourceService,
			k.SourceEndpoint,
			k.SourceMethod,
			k.TargetService,
			k.TargetEndpoint,
			k.TargetMethod,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// edgeRows builds table rows for edges, with the side rendered by paint.
func edgeRows(side string, paint func(...any) string, edges []schema.EdgeDetail, endpointWidth int) [][]string {
	data := make([][]string, 0, len(edges))
	for _, e := range edges {
		k := e.Key
		data = append(data, []string{
			paint(side),
			endpointLabel(k.SourceService, k.SourceMethod, k.SourceEndpoint, endpointWidth),
			endpointLabel(k.TargetService, k.TargetMethod, k.TargetEndpoint, endpointWidth),
		})
	}
	return data
}

// writeDiffTable writes the differing edges followed by the coverage counts.
func writeDiffTable(w io.Writer, result schema.DiffResult, cfg *contract.Config, duration time.Duration) error {
	p := newPalette(cfg.UseColors)
	endpointWidth := GetMaxTableCellWidth(cfg, edgeTableFixedWidth) / 2

	data := edgeRows("only in file 1", p.red, result.OnlyInFile1, endpointWidth)
	data = append(data, edgeRows("only in file 2", p.green, result.OnlyInFile2, endpointWidth)...)

	if len(data) == 0 {
		_, _ = fmt.Fprintln(w, p.yellow("Both reports cover the same edges."))
	} else if err := writeTable(w, []string{"Side", "Source", "Target"}, data); err != nil {
		return fmt.Errorf("error writing diff table output: %w", err)
	}

	s := result.Summary
	_, _ = fmt.Fprintf(w, "Covered edges: file 1 = %d, file 2 = %d, shared = %d, only in file 1 = %s, only in file 2 = %s\n",
		s.File1Covered, s.File2Covered, s.Shared, p.red(s.OnlyInFile1), p.green(s.OnlyInFile2))
	_, _ = fmt.Fprintf(w, "Diff completed in %v\n", duration)
	return nil
}
