package cmd

import (
	"github.com/huangsam/edgecov/core"
	"github.com/spf13/cobra"
)

// graphCmd builds the service dependency graph of a runtime report.
var graphCmd = &cobra.Command{
	Use:   "graph <runtime-report.json>",
	Short: "Print the service dependency graph of a runtime report",
	Long: `Collapse the endpoint-level edges of a runtime report into service-level
dependencies. Every recorded edge counts, whatever its hit count.

Examples:
  # List the dependencies between services
  edgecov graph report.json

  # Include the called method of each dependency
  edgecov graph report.json --show-label

  # Read the call-info graph instead of the runtime graph
  edgecov graph report.json --runtime-graph-key finalCallInfoGraph`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteGraph(rootCtx, cfg, writer)
	},
}
