package cmd

import (
	"github.com/huangsam/edgecov/core"
	"github.com/spf13/cobra"
)

// dictCmd turns a parameter validation schema into a fuzzing dictionary.
var dictCmd = &cobra.Command{
	Use:   "dict <sisp.json>",
	Short: "Build a fuzzing dictionary from a parameter validation schema",
	Long: `Read a parameter validation schema (a JSON list of parameter specs) and keep
the first valid sample of each category. Output is sorted by parameter name.

Examples:
  # Write the dictionary a fuzzer can load
  edgecov dict sisp.json --output json --output-file fuzz_dict.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteDict(rootCtx, cfg, writer)
	},
}
