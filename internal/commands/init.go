package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and allow-list",
	Long:  `Creates a sample .riskspectre.yaml config file and an Apps.csv allow-list template.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".riskspectre.yaml"
	allowListPath := defaultAllowList

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(allowListPath, sampleAllowList, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, allowListPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .riskspectre.yaml to point 'input' at your inventory export")
	fmt.Println("  2. List the application codes to analyze in Apps.csv (delete it to analyze all)")
	fmt.Println("  3. Run: riskspectre analyze  OR  riskspectre aws  OR  riskspectre gcp --project=PROJECT_ID")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# riskspectre configuration
# See: https://github.com/ppiankov/riskspectre

# Inventory CSV for 'riskspectre analyze'
input: sampleData.csv

# Allow-list of application codes (missing file disables filtering)
allow_list: Apps.csv

# Output artifacts (set to "" to skip)
output: analyzed_data.csv
chart_output: risk_chart.csv

# Keep AppCode in the enriched records CSV (de-identified by default)
include_identifier: false

# Add service name and severity weight to the chart CSV
detailed_chart: false

# Risk share normalization: global (share of total) or grouped (share within severity label)
normalization: global

# Output format: text, json, or sarif
format: text

# Run timeout
timeout: 10m

# Inventory CSV column names
# columns:
#   service_name: ApplicationService
#   identifier: AppCode
#   severity_label: CompositeScore
#   asset_class: Class

# Severity label weights (labels not listed score 0)
# weights:
#   High: 3.0
#   Moderate High: 2.5
#   Moderate: 2.0
#   Low: 1.0

# Cloud inventory: tag/label keys carrying the inventory fields
# tags:
#   identifier: app-code
#   severity_label: composite-score
#   asset_class: class

# AWS profile (or set AWS_PROFILE env var)
# profile: default

# GCP project ID (required for gcp)
# project: my-project-id

# Regions (AWS uses the first) or GCP locations
# regions:
#   - us-east-1

# Repositories to skip during cloud inventory
# exclude:
#   resource_ids:
#     - myapp/production
`

const sampleAllowList = `AppCode
`
