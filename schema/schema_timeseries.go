package schema

// ScenarioRecord is one recognized "scenario finished" log entry.
type ScenarioRecord struct {
	UUID             string  `json:"uuid" yaml:"uuid"`
	EdgeCoveredCount int     `json:"edge_covered_count" yaml:"edge_covered_count"`
	EdgeCoverage     float64 `json:"edge_coverage" yaml:"edge_coverage"` // Expected in [0,1], not enforced
	StatusCodeCount  int     `json:"status_code_count" yaml:"status_code_count"`
}

// LineFailure records a log line whose labeled fields were present but unparsable.
type LineFailure struct {
	Line  int    `json:"line" yaml:"line"` // 1-based line number in the input
	Field string `json:"field" yaml:"field"`
	Err   string `json:"error" yaml:"error"`
}

// ScenarioParseResult wraps the parsed records with the lines that were skipped.
type ScenarioParseResult struct {
	Records  []ScenarioRecord `json:"records" yaml:"records"`
	Skipped  int              `json:"skipped" yaml:"skipped"`
	Failures []LineFailure    `json:"failures" yaml:"failures"`
}

// TrendSeries holds three parallel sequences aligned by 1-based scenario index.
// The x-axis is implicit: position i is the i-th scenario in log emission order.
type TrendSeries struct {
	UUIDs            []string  `json:"-" yaml:"-"`
	EdgeCoveredCount []int     `json:"edge_covered_count" yaml:"edge_covered_count"`
	EdgeCoverage     []float64 `json:"edge_coverage" yaml:"edge_coverage"`
	StatusCodeCount  []int     `json:"status_code_count" yaml:"status_code_count"`
}

// Len returns the number of scenarios in the series.
func (s TrendSeries) Len() int {
	return len(s.EdgeCoveredCount)
}

// MetricTrend summarizes how one metric moved across the series.
type MetricTrend struct {
	Metric    TrendMetric    `json:"metric" yaml:"metric"`
	First     float64        `json:"first" yaml:"first"`
	Last      float64        `json:"last" yaml:"last"`
	Min       float64        `json:"min" yaml:"min"`
	Max       float64        `json:"max" yaml:"max"`
	Delta     float64        `json:"delta" yaml:"delta"` // Last - First
	Direction TrendDirection `json:"direction" yaml:"direction"`
}

// TrendResult is what the trend command renders.
type TrendResult struct {
	Series   TrendSeries   `json:"series" yaml:"series"`
	Summary  []MetricTrend `json:"summary" yaml:"summary"`
	Skipped  int           `json:"skipped" yaml:"skipped"`
	Failures []LineFailure `json:"failures" yaml:"failures"`
}
