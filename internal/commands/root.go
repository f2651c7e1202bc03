package commands

import (
	"github.com/ppiankov/riskspectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "riskspectre",
	Short: "riskspectre — infrastructure inventory risk ranking",
	Long: `riskspectre reads infrastructure inventory records, collapses them to one
record per application code, and ranks applications by their share of total risk.

Risk score is the severity weight of an application multiplied by the number of
inventory rows it owns. Inventory can come from a CSV export, AWS ECR repository
tags, or GCP Artifact Registry repository labels.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(awsCmd)
	rootCmd.AddCommand(gcpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
