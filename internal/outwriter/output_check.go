package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/schema"
)

// WriteGateResults outputs a regression check outcome, dispatching based on the output format configured.
func WriteGateResults(w io.Writer, result schema.GateResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAMLResultsForGate(w, result); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		err := writeCSVWithHeader(w, edgeCSVHeader, func(cw *csv.Writer) error {
			return writeEdgeRows(cw, "lost", result.LostEdges)
		})
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeGateTable(w, result, cfg, duration)
	}
	return nil
}

func writeYAMLResultsForGate(w io.Writer, result schema.GateResult) error {
	lost, err := toYAMLEdges(result.LostEdges)
	if err != nil {
		return err
	}
	return writeYAML(w, struct {
		schema.GateResult `yaml:",inline"`
		LostEdges         []yamlEdge `yaml:"lost_edges"`
	}{result, lost})
}

// writeGateTable prints the verdict, the lost edges and the coverage counts.
func writeGateTable(w io.Writer, result schema.GateResult, cfg *contract.Config, duration time.Duration) error {
	p := newPalette(cfg.UseColors)
	lost := len(result.LostEdges)

	if result.Passed {
		_, _ = fmt.Fprintf(w, "%s lost %d edge(s), %d allowed\n", p.green("✅ PASSED:"), lost, result.MaxLost)
	} else {
		_, _ = fmt.Fprintf(w, "%s lost %d edge(s), %d allowed\n", p.red("❌ FAILED:"), lost, result.MaxLost)
	}

	if lost > 0 {
		endpointWidth := GetMaxTableCellWidth(cfg, edgeTableFixedWidth) / 2
		data := edgeRows("lost", p.red, result.LostEdges, endpointWidth)
		if err := writeTable(w, []string{"Side", "Source", "Target"}, data); err != nil {
			return fmt.Errorf("error writing check table output: %w", err)
		}
	}

	s := result.Summary
	_, _ = fmt.Fprintf(w, "Covered edges: baseline = %d, candidate = %d, shared = %d, gained = %s\n",
		s.File1Covered, s.File2Covered, s.Shared, p.green(result.GainedEdges))
	_, _ = fmt.Fprintf(w, "Check completed in %v\n", duration)
	return nil
}
