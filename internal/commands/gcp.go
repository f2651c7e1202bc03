package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/riskspectre/internal/artifactregistry"
	"github.com/ppiankov/riskspectre/internal/config"
	"github.com/ppiankov/riskspectre/internal/report"
	"github.com/spf13/cobra"
)

var gcpFlags struct {
	project    string
	locations  []string
	noProgress bool
	analysisOptions
}

var gcpCmd = &cobra.Command{
	Use:   "gcp",
	Short: "Rank applications owning GCP Artifact Registry repositories by risk share",
	Long: `Collect inventory from the Artifact Registry repositories of a GCP project.
Each repository is one inventory row; repository labels supply the identifier,
severity and asset class. GCP label keys are lowercase, so set the label names
under 'tags' in .riskspectre.yaml (for example identifier: app-code).`,
	RunE: runGCP,
}

func init() {
	gcpCmd.Flags().StringVar(&gcpFlags.project, "project", "", "GCP project ID (required)")
	gcpCmd.Flags().StringSliceVar(&gcpFlags.locations, "locations", nil, "Comma-separated locations (e.g., us-central1,europe-west1)")
	gcpCmd.Flags().BoolVar(&gcpFlags.noProgress, "no-progress", false, "Disable progress output")
	addAnalysisFlags(gcpCmd, &gcpFlags.analysisOptions)
}

func runGCP(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyGCPConfigDefaults(cfg)

	if gcpFlags.project == "" {
		return fmt.Errorf("--project is required for GCP inventory")
	}

	locations := gcpFlags.locations
	if len(locations) == 0 && len(cfg.Regions) > 0 {
		locations = cfg.Regions
	}
	if len(locations) == 0 {
		return fmt.Errorf("--locations is required (e.g., us-central1,europe-west1)")
	}

	ctx := cmd.Context()
	slog.Info("Collecting Artifact Registry inventory", "project", gcpFlags.project, "locations", locations)

	client, err := artifactregistry.NewClient(ctx)
	if err != nil {
		return enhanceError("initialize GCP client", err)
	}
	defer func() { _ = client.Close() }()

	src := artifactregistry.NewSource(client, gcpFlags.project, locations, cfg.Tags, cfg.ExcludeSet(), progressPrinter(gcpFlags.noProgress))

	target := report.Target{
		Type:    "artifact-registry",
		URIHash: computeTargetHash("artifact-registry", gcpFlags.project, strings.Join(locations, ",")),
	}
	return runPipeline(ctx, &gcpFlags.analysisOptions, cfg, src, target, "gcp:"+gcpFlags.project)
}

func applyGCPConfigDefaults(cfg config.Config) {
	gcpFlags.applyConfigDefaults(cfg)
	if gcpFlags.project == "" && cfg.Project != "" {
		gcpFlags.project = cfg.Project
	}
}
