package schema

// Default label texts of a scenario-finished log line.
const (
	DefaultScenarioMarker        = "Finish execute current test scenario"
	DefaultUUIDLabel             = "UUID:"
	DefaultEdgeCoveredCountLabel = "Edge covered count:"
	DefaultEdgeCoverageLabel     = "Edge coverage:"
	DefaultStatusCodeCountLabel  = "covered status code count:"
)

// Default value patterns. A value is the longest prefix after the label that matches.
const (
	DefaultUUIDValue     = `[0-9A-Fa-f-]+`
	DefaultCountValue    = `[0-9]+`
	DefaultCoverageValue = `[0-9.]+(?:[eE][-+]?[0-9]+)?`
)

// FieldLabel ties a scenario field to the fixed label text that introduces it
// and the regular expression its value must match.
type FieldLabel struct {
	Field ScenarioField `mapstructure:"field"`
	Label string        `mapstructure:"label"`
	Value string        `mapstructure:"value"`
}

// ScenarioGrammar describes what a scenario-finished line looks like:
// a marker phrase followed, in order, by one labeled value per field.
type ScenarioGrammar struct {
	Marker string       `mapstructure:"marker"`
	Fields []FieldLabel `mapstructure:"fields"`
}

// DefaultScenarioGrammar returns the grammar of the fuzzer's own log lines.
func DefaultScenarioGrammar() ScenarioGrammar {
	return ScenarioGrammar{
		Marker: DefaultScenarioMarker,
		Fields: []FieldLabel{
			{Field: FieldUUID, Label: DefaultUUIDLabel, Value: DefaultUUIDValue},
			{Field: FieldEdgeCoveredCount, Label: DefaultEdgeCoveredCountLabel, Value: DefaultCountValue},
			{Field: FieldEdgeCoverage, Label: DefaultEdgeCoverageLabel, Value: DefaultCoverageValue},
			{Field: FieldStatusCodeCount, Label: DefaultStatusCodeCountLabel, Value: DefaultCountValue},
		},
	}
}
