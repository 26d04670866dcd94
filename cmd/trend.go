package cmd

import (
	"github.com/huangsam/edgecov/core"
	"github.com/spf13/cobra"
)

// trendCmd extracts per-scenario coverage metrics from a fuzzer log.
var trendCmd = &cobra.Command{
	Use:   "trend <fuzzer.log | ->",
	Short: "Chart per-scenario coverage metrics from a fuzzer execution log",
	Long: `Scan an execution log for "scenario finished" lines and extract, in log order,
the edge covered count, edge coverage and covered status code count of each scenario.

Lines without the marker are ignored. Lines with the marker but an unparsable value
are skipped and reported on stderr. Use "-" to read the log from stdin.

The marker and field labels can be changed in the config file:

  scenario:
    marker: "Finish execute current test scenario"
    labels:
      edge_coverage: "Edge coverage:"

Examples:
  # Show the series with a summary of each metric
  edgecov trend fuzzer.log

  # Produce the three series as JSON for plotting
  edgecov trend fuzzer.log --output json --output-file trend.json

  # Stream a running campaign and fail on more than 10 bad lines
  tail -n +1 fuzzer.log | edgecov trend - --max-failures 10`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteTrend(rootCtx, cfg, writer)
	},
}
