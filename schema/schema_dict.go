package schema

// ValidSample is one category of valid values for a parameter.
type ValidSample struct {
	ParamName   string   `json:"param_name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Samples     []string `json:"samples"`
}

// ParamSpec is one entry of a parameter validation schema (SISP file).
// Invalid samples are decoded but not used.
type ParamSpec struct {
	OpName    string        `json:"op_name"`
	Type      string        `json:"type"`
	ParamName string        `json:"param_name"`
	Format    []string      `json:"format"`
	Valid     []ValidSample `json:"valid"`
	Invalid   []ValidSample `json:"invalid"`
}

// DictEntry is one fuzzing dictionary value.
type DictEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}
