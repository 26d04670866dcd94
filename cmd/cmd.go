// Package cmd defines the command-line interface for edgecov.
package cmd

import (
	"github.com/huangsam/edgecov/internal/contract"
	"github.com/huangsam/edgecov/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(dictCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet or sqlite")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to (required for parquet and sqlite)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", contract.DefaultColor, "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("graph-key", schema.CallInfoGraphKey, "Graph container read by diff and check")
	rootCmd.PersistentFlags().String("runtime-graph-key", schema.RuntimeGraphKey, "Graph container read by graph")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Int("max-lost", contract.DefaultMaxLost, "Number of lost edges tolerated before the check fails")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of trendCmd to Viper
	trendCmd.Flags().Int("max-failures", contract.DefaultMaxFailures, "Fail when more scenario lines than this are unparsable (-1 = no limit)")
	if err := viper.BindPFlags(trendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trend flags", err)
	}

	// Bind all flags of graphCmd to Viper
	graphCmd.Flags().Bool("show-label", false, "Print the called method on each dependency")
	if err := viper.BindPFlags(graphCmd.Flags()); err != nil {
		contract.LogFatal("Error binding graph flags", err)
	}
}
