package contract

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/huangsam/edgecov/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 3
	MaxPrecision       = 6
	DefaultMaxLost     = 0
	DefaultMaxFailures = -1 // no limit
	DefaultColor       = "yes"
)

// MaxDetailedWarnings caps how many skipped log lines are reported one by one.
const MaxDetailedWarnings = 5

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ScenarioRawInput overrides parts of the scenario log grammar from the config file.
// Labels and Values are keyed by scenario field name (uuid, edge_covered_count, ...).
type ScenarioRawInput struct {
	Marker string            `mapstructure:"marker"`
	Labels map[string]string `mapstructure:"labels"`
	Values map[string]string `mapstructure:"values"`
}

// Config holds the runtime configuration of one invocation.
// This struct is the "final, validated" config.
type Config struct {
	Inputs     []string // positional file arguments
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	GraphKey        string // graph container used by diff and check
	RuntimeGraphKey string // graph container used by graph

	MaxLost     int  // check: tolerated number of lost edges
	MaxFailures int  // trend: tolerated number of skipped log lines, -1 for no limit
	ShowLabel   bool // graph: print edge labels in text output

	Grammar schema.ScenarioGrammar
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Inputs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	GraphKey        string `mapstructure:"graph-key"`
	RuntimeGraphKey string `mapstructure:"runtime-graph-key"`

	// --- Fields from checkCmd.Flags() ---
	MaxLost int `mapstructure:"max-lost"`

	// --- Fields from trendCmd.Flags() ---
	MaxFailures int `mapstructure:"max-failures"`

	// --- Fields from graphCmd.Flags() ---
	ShowLabel bool `mapstructure:"show-label"`

	// --- Scenario grammar from config file ---
	Scenario ScenarioRawInput `mapstructure:"scenario"`
}

// NewDefaultConfig returns a validated config with every default applied.
func NewDefaultConfig() *Config {
	return &Config{
		Output:          schema.TextOut,
		Precision:       DefaultPrecision,
		UseColors:       true,
		GraphKey:        schema.CallInfoGraphKey,
		RuntimeGraphKey: schema.RuntimeGraphKey,
		MaxLost:         DefaultMaxLost,
		MaxFailures:     DefaultMaxFailures,
		Grammar:         schema.DefaultScenarioGrammar(),
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Inputs = slices.Clone(c.Inputs)
	clone.Grammar.Fields = slices.Clone(c.Grammar.Fields)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutput(cfg, input); err != nil {
		return err
	}
	if err := processScenarioGrammar(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Inputs = slices.Clone(input.Inputs)
	cfg.ShowLabel = input.ShowLabel

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	cfg.GraphKey = strings.TrimSpace(input.GraphKey)
	if cfg.GraphKey == "" {
		return fmt.Errorf("graph-key cannot be empty")
	}
	cfg.RuntimeGraphKey = strings.TrimSpace(input.RuntimeGraphKey)
	if cfg.RuntimeGraphKey == "" {
		return fmt.Errorf("runtime-graph-key cannot be empty")
	}

	if input.MaxLost < 0 {
		return fmt.Errorf("max-lost cannot be negative (received %d)", input.MaxLost)
	}
	cfg.MaxLost = input.MaxLost

	if input.MaxFailures < -1 {
		return fmt.Errorf("max-failures must be -1 (no limit) or greater (received %d)", input.MaxFailures)
	}
	cfg.MaxFailures = input.MaxFailures
	return nil
}

// validateOutput checks the output format and its destination.
func validateOutput(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet, sqlite", input.Output)
	}
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	if _, fileOnly := schema.FileOnlyOutputModes[cfg.Output]; fileOnly && cfg.OutputFile == "" {
		return fmt.Errorf("%s output requires --output-file", cfg.Output)
	}
	return nil
}

// processScenarioGrammar overlays config file overrides onto the default grammar.
func processScenarioGrammar(cfg *Config, input *ConfigRawInput) error {
	grammar := schema.DefaultScenarioGrammar()
	if marker := strings.TrimSpace(input.Scenario.Marker); marker != "" {
		grammar.Marker = marker
	}
	if err := overlayGrammar(&grammar, input.Scenario.Labels, "labels", func(fl *schema.FieldLabel, v string) { fl.Label = v }); err != nil {
		return err
	}
	if err := overlayGrammar(&grammar, input.Scenario.Values, "values", func(fl *schema.FieldLabel, v string) { fl.Value = v }); err != nil {
		return err
	}
	cfg.Grammar = grammar
	return nil
}

// overlayGrammar applies per-field overrides from one scenario config map.
func overlayGrammar(grammar *schema.ScenarioGrammar, overrides map[string]string, key string, set func(*schema.FieldLabel, string)) error {
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		value := overrides[name]
		idx := slices.IndexFunc(grammar.Fields, func(fl schema.FieldLabel) bool {
			return string(fl.Field) == strings.ToLower(name)
		})
		if idx < 0 {
			return fmt.Errorf("unknown scenario field '%s' in scenario.%s", name, key)
		}
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("scenario.%s for '%s' cannot be empty", key, name)
		}
		if key == "values" {
			if _, err := regexp.Compile(value); err != nil {
				return fmt.Errorf("scenario.values for '%s' is not a valid pattern: %w", name, err)
			}
		}
		set(&grammar.Fields[idx], value)
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
