package cmd

import (
	"github.com/huangsam/edgecov/core"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD coverage gating.
var checkCmd = &cobra.Command{
	Use:   "check <baseline.json> <candidate.json>",
	Short: "Fail when a candidate report loses covered edges (CI/CD gate)",
	Long: `Diff a baseline coverage report against a candidate and fail with a non-zero
exit code when the candidate lost more covered edges than allowed.

Newly covered edges never fail the check. The lost edges are printed so the
regression can be traced to concrete service calls.

Examples:
  # Block a change that loses any covered edge
  edgecov check baseline.json candidate.json

  # Tolerate up to three lost edges
  edgecov check baseline.json candidate.json --max-lost 3

  # Keep a JSON record of the gate
  edgecov check baseline.json candidate.json --output json --output-file gate.json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCheck(rootCtx, cfg, writer)
	},
}
