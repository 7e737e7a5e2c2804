// Package main provides the CLI entry point for scorecard-go.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath      string
	asOf            string
	lookahead       int
	workstreams     []string
	owners          []string
	health          []string
	includeComplete bool
	verbose         bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Roll program status workbooks up into an executive scorecard",
		Long: `scorecard-go reads Portfolio, Milestones and Risks sheets from an Excel
workbook, normalizes their columns and status wording, and reports the
executive summary as text or JSON, a filtered workbook, or CSV.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVar(&asOf, "as-of", "", "Reporting date, YYYY-MM-DD (default: today)")
	flags.IntVar(&lookahead, "lookahead", 0, "Upcoming milestone window in days (default: 45)")
	flags.StringSliceVar(&workstreams, "workstream", nil, "Only include these workstreams")
	flags.StringSliceVar(&owners, "owner", nil, "Only include these owners")
	flags.StringSliceVar(&health, "health", nil, "Only include these health categories")
	flags.BoolVar(&includeComplete, "include-complete", false, "Include completed initiatives")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newSummarizeCmd(),
		newTemplateCmd(),
		newExportCmd(),
		newCSVCmd(),
		newServeCmd(),
	)
	return rootCmd
}
