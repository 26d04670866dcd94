package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/schema"
)

// WriteGraphResults outputs a service graph, dispatching based on the output format configured.
func WriteGraphResults(w io.Writer, graph schema.ServiceGraph, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, graph); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAML(w, graph); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		err := writeCSVWithHeader(w, []string{"source", "target", "label"}, func(cw *csv.Writer) error {
			for _, e := range graph.Edges {
				if err := cw.Write([]string{e.Source, e.Target, e.Label}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeGraphTable(w, graph, cfg, duration)
	}
	return nil
}

// writeGraphTable prints one row per dependency; labels only with ShowLabel.
func writeGraphTable(w io.Writer, graph schema.ServiceGraph, cfg *contract.Config, duration time.Duration) error {
	p := newPalette(cfg.UseColors)

	headers := []string{"Source", "Target"}
	if cfg.ShowLabel {
		headers = append(headers, "Label")
	}

	data := make([][]string, 0, len(graph.Edges))
	for _, e := range graph.Edges {
		row := []string{e.Source, e.Target}
		if cfg.ShowLabel {
			row = append(row, p.cyan(e.Label))
		}
		data = append(data, row)
	}
	if err := writeTable(w, headers, data); err != nil {
		return fmt.Errorf("error writing graph table output: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Services (%d): %s\n", len(graph.Nodes), strings.Join(graph.Nodes, ", "))
	_, _ = fmt.Fprintf(w, "Graph with %d dependencies completed in %v\n", len(graph.Edges), duration)
	return nil
}
