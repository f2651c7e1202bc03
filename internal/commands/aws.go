package commands

import (
	"fmt"
	"log/slog"

	"github.com/ppiankov/riskspectre/internal/config"
	"github.com/ppiankov/riskspectre/internal/ecr"
	"github.com/ppiankov/riskspectre/internal/report"
	"github.com/spf13/cobra"
)

var awsFlags struct {
	region     string
	profile    string
	noProgress bool
	analysisOptions
}

var awsCmd = &cobra.Command{
	Use:   "aws",
	Short: "Rank applications owning AWS ECR repositories by risk share",
	Long: `Collect inventory from the ECR repositories of an AWS account. Each repository
is one inventory row; the AppCode, CompositeScore and Class tags (configurable
under 'tags' in .riskspectre.yaml) supply the identifier, severity and asset class.`,
	RunE: runAWS,
}

func init() {
	awsCmd.Flags().StringVar(&awsFlags.region, "region", "", "AWS region (default: from AWS config)")
	awsCmd.Flags().StringVar(&awsFlags.profile, "profile", "", "AWS profile name")
	awsCmd.Flags().BoolVar(&awsFlags.noProgress, "no-progress", false, "Disable progress output")
	addAnalysisFlags(awsCmd, &awsFlags.analysisOptions)
}

func runAWS(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	awsFlags.applyConfigDefaults(cfg)

	profile := awsFlags.profile
	if profile == "" {
		profile = cfg.Profile
	}
	region := awsFlags.region
	if region == "" && len(cfg.Regions) > 0 {
		region = cfg.Regions[0]
	}

	client, err := ecr.NewClient(ctx, profile, region)
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	resolvedRegion := client.Region()
	if resolvedRegion == "" {
		return fmt.Errorf("no AWS region configured; use --region or set AWS_REGION")
	}
	slog.Info("Collecting ECR inventory", "region", resolvedRegion)

	src := ecr.NewSource(client.NewECRClient(), resolvedRegion, cfg.Tags, cfg.ExcludeSet(), progressPrinter(awsFlags.noProgress))

	target := report.Target{
		Type:    "ecr",
		URIHash: computeTargetHash("ecr", resolvedRegion, profile),
	}
	return runPipeline(ctx, &awsFlags.analysisOptions, cfg, src, target, "ecr:"+resolvedRegion)
}
