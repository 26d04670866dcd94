package cmd

import (
	"github.com/huangsam/edgecov/core"
	"github.com/spf13/cobra"
)

// diffCmd compares the covered edges of two reports.
var diffCmd = &cobra.Command{
	Use:   "diff <report1.json> <report2.json>",
	Short: "Compare the covered service-call edges of two coverage reports",
	Long: `Load two fuzzer coverage reports, keep only edges with a positive hit count,
and print the edges covered by exactly one of them.

An edge is identified by source and target service, endpoint and method. Hit counts
never affect identity, so the same edge hit once or a thousand times is the same edge.
Both sides are sorted, so identical inputs always give identical output.

Examples:
  # Show what changed between two campaign runs
  edgecov diff run-1/report.json run-2/report.json

  # Write the machine-readable diff
  edgecov diff old.json new.json --output json --output-file diff.json

  # Compare another graph container of the report
  edgecov diff old.json new.json --graph-key finalRuntimeGraph

  # Export both sides for later analysis
  edgecov diff old.json new.json --output parquet --output-file diff.parquet`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteDiff(rootCtx, cfg, writer)
	},
}
