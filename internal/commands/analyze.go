package commands

import (
	"log/slog"

	"github.com/ppiankov/riskspectre/internal/config"
	"github.com/ppiankov/riskspectre/internal/csvio"
	"github.com/ppiankov/riskspectre/internal/report"
	"github.com/spf13/cobra"
)

const defaultInput = "sampleData.csv"

var analyzeFlags struct {
	input string
	analysisOptions
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank applications in an inventory CSV by risk share",
	Long: `Read an inventory CSV (ApplicationService, AppCode, CompositeScore, Class),
keep the first row per AppCode, optionally restrict to the AppCodes listed in an
allow-list CSV, and rank the applications by their share of total risk.

Writes the enriched records and the risk chart as CSV files and prints a report.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.input, "input", defaultInput, "Inventory CSV file")
	addAnalysisFlags(analyzeCmd, &analyzeFlags.analysisOptions)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	if analyzeFlags.input == defaultInput && cfg.Input != "" {
		analyzeFlags.input = cfg.Input
	}
	analyzeFlags.applyConfigDefaults(cfg)

	slog.Info("Analyzing inventory", "input", analyzeFlags.input)
	src := csvio.NewSource(analyzeFlags.input, cfg.Columns)

	target := report.Target{
		Type:    "csv",
		URIHash: computeTargetHash("csv", analyzeFlags.input),
	}
	return runPipeline(cmd.Context(), &analyzeFlags.analysisOptions, cfg, src, target, analyzeFlags.input)
}
