package commands

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// enhanceError wraps an error with context and suggestions for common cloud issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case strings.Contains(msg, "NoCredentialProviders"):
		hint = "Configure AWS credentials: set AWS_PROFILE, AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY, or run 'aws configure'"
	case strings.Contains(msg, "ExpiredToken"):
		hint = "AWS session token expired. Refresh credentials or run 'aws sso login'"
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "UnauthorizedAccess"):
		hint = "Insufficient permissions. Grant ecr:DescribeRepositories and ecr:ListTagsForResource"
	case strings.Contains(msg, "Throttling"):
		hint = "API rate limit hit. Retry later or increase timeout"
	case strings.Contains(msg, "GOOGLE_APPLICATION_CREDENTIALS"):
		hint = "Configure GCP credentials: set GOOGLE_APPLICATION_CREDENTIALS or run 'gcloud auth application-default login'"
	case strings.Contains(msg, "could not find default credentials"):
		hint = "Configure GCP credentials: run 'gcloud auth application-default login'"
	case strings.Contains(msg, "no such file or directory"):
		hint = "Check --input, or set 'input' in .riskspectre.yaml (run 'riskspectre init' for a template)"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// computeTargetHash generates a SHA256 hash identifying the analyzed inventory.
func computeTargetHash(kind string, parts ...string) string {
	input := fmt.Sprintf("source:%s,target:%s", kind, strings.Join(parts, ","))
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("sha256:%x", h)
}

// progressPrinter returns a progress callback writing to stderr, or nil when disabled.
func progressPrinter(disabled bool) func(inventory.Progress) {
	if disabled {
		return nil
	}
	return func(p inventory.Progress) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", p.Region, p.Message)
	}
}
