package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// TrendMetric names one of the three scenario metrics.
	TrendMetric string

	// TrendDirection indicates whether a metric went up, down or stayed flat.
	TrendDirection string

	// ScenarioField names a labeled field of a scenario log line.
	ScenarioField string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
	SQLiteOut  OutputMode = "sqlite"
)

// Scenario metrics, named as in the trend JSON output.
const (
	MetricEdgeCoveredCount TrendMetric = "edge_covered_count"
	MetricEdgeCoverage     TrendMetric = "edge_coverage"
	MetricStatusCodeCount  TrendMetric = "status_code_count"
)

// Trend directions.
const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// Labeled fields of a scenario log line.
const (
	FieldUUID             ScenarioField = "uuid"
	FieldEdgeCoveredCount ScenarioField = "edge_covered_count"
	FieldEdgeCoverage     ScenarioField = "edge_coverage"
	FieldStatusCodeCount  ScenarioField = "status_code_count"
)

// Well-known graph containers of a fuzzer report.
const (
	CallInfoGraphKey = "finalCallInfoGraph" // default for diff and check
	RuntimeGraphKey  = "finalRuntimeGraph"  // default for graph
)

// AllTrendMetrics lists the metrics in output order.
var AllTrendMetrics = []TrendMetric{MetricEdgeCoveredCount, MetricEdgeCoverage, MetricStatusCodeCount}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
	SQLiteOut:  {},
}

// FileOnlyOutputModes lists output modes that cannot be written to stdout.
var FileOnlyOutputModes = map[OutputMode]struct{}{
	ParquetOut: {},
	SQLiteOut:  {},
}
