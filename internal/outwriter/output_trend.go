package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/schema"
)

// WriteTrendResults outputs a scenario trend, dispatching based on the output format configured.
// JSON and YAML carry only the three series.
func WriteTrendResults(w io.Writer, result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result.Series); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeYAML(w, result.Series); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForTrend(w, result.Series, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeTrendTable(w, result, cfg, fmtFloat, intFmt, duration)
	}
	return nil
}

func writeCSVResultsForTrend(w io.Writer, series schema.TrendSeries, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"index",
		"uuid",
		string(schema.MetricEdgeCoveredCount),
		string(schema.MetricEdgeCoverage),
		string(schema.MetricStatusCodeCount),
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range trendRows(series, fmtFloat, intFmt) {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// trendRows lays the parallel series out as one row per scenario.
func trendRows(series schema.TrendSeries, fmtFloat func(float64) string, intFmt string) [][]string {
	data := make([][]string, series.Len())
	for i := range data {
		var uuid string
		if i < len(series.UUIDs) {
			uuid = series.UUIDs[i]
		}
		data[i] = []string{
			fmt.Sprintf(intFmt, i+1),
			uuid,
			fmt.Sprintf(intFmt, series.EdgeCoveredCount[i]),
			fmtFloat(series.EdgeCoverage[i]),
			fmt.Sprintf(intFmt, series.StatusCodeCount[i]),
		}
	}
	return data
}

// writeTrendTable prints the per-scenario table, then one summary row per metric.
func writeTrendTable(w io.Writer, result schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	p := newPalette(cfg.UseColors)

	headers := []string{"#", "UUID", "Edges Covered", "Edge Coverage", "Status Codes"}
	if err := writeTable(w, headers, trendRows(result.Series, fmtFloat, intFmt)); err != nil {
		return fmt.Errorf("error writing trend table output: %w", err)
	}

	summary := make([][]string, 0, len(result.Summary))
	for _, m := range result.Summary {
		summary = append(summary, []string{
			p.cyan(string(m.Metric)),
			fmtFloat(m.First),
			fmtFloat(m.Last),
			fmtFloat(m.Min),
			fmtFloat(m.Max),
			fmtFloat(m.Delta),
			paintDirection(p, m.Direction),
		})
	}
	if len(summary) > 0 {
		if err := writeTable(w, []string{"Metric", "First", "Last", "Min", "Max", "Delta", "Direction"}, summary); err != nil {
			return fmt.Errorf("error writing trend summary output: %w", err)
		}
	}

	if result.Skipped > 0 {
		_, _ = fmt.Fprintf(w, "Skipped %s malformed scenario line(s)\n", p.yellow(result.Skipped))
	}
	_, _ = fmt.Fprintf(w, "Trend of %d scenario(s) completed in %v\n", result.Series.Len(), duration)
	return nil
}

func paintDirection(p palette, d schema.TrendDirection) string {
	switch d {
	case schema.TrendUp:
		return p.green("↑ " + string(d))
	case schema.TrendDown:
		return p.red("↓ " + string(d))
	default:
		return p.yellow("→ " + string(d))
	}
}
