package ecr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// AssetClass is used for repositories without an asset class tag.
const AssetClass = "ecr-repository"

// Source turns ECR repositories into inventory records. Tags named by the
// column mapping supply the identifier, severity label and asset class; the
// repository name is the service name unless a tag overrides it.
type Source struct {
	client   ECRAPI
	region   string
	columns  inventory.Columns
	exclude  map[string]bool
	progress func(inventory.Progress)
	now      func() time.Time
}

// NewSource creates an inventory source for the given ECR client and region.
func NewSource(client ECRAPI, region string, cols inventory.Columns, exclude map[string]bool, progress func(inventory.Progress)) *Source {
	return &Source{
		client:   client,
		region:   region,
		columns:  cols.WithDefaults(),
		exclude:  exclude,
		progress: progress,
		now:      time.Now,
	}
}

// Read implements inventory.Source.
func (s *Source) Read(ctx context.Context) ([]inventory.Record, error) {
	repos, err := ListRepositories(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.region, err)
	}
	s.reportProgress(fmt.Sprintf("Found %d repositories", len(repos)))

	records := make([]inventory.Record, 0, len(repos))
	for _, repo := range repos {
		name := aws.ToString(repo.RepositoryName)
		if s.exclude[name] {
			continue
		}

		tags, err := RepositoryTags(ctx, s.client, aws.ToString(repo.RepositoryArn))
		if err != nil {
			slog.Warn("Skipping repository", "region", s.region, "repository", name, "error", err)
			continue
		}

		rec := s.columns.Record(inventory.Row(tags))
		if rec.ServiceName == "" {
			rec.ServiceName = name
		}
		if rec.AssetClass == "" {
			rec.AssetClass = AssetClass
		}
		records = append(records, rec)
	}

	s.reportProgress(fmt.Sprintf("Collected %d inventory records", len(records)))
	return records, nil
}

func (s *Source) reportProgress(msg string) {
	if s.progress == nil {
		return
	}
	s.progress(inventory.Progress{
		Region:    s.region,
		Source:    "ecr",
		Message:   msg,
		Timestamp: s.now(),
	})
}
