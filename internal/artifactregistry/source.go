package artifactregistry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// Source turns Artifact Registry repositories into inventory records using
// repository labels. GCP label keys are lowercase, so the column mapping
// usually needs label-style names such as "app-code".
type Source struct {
	client    ARAPI
	project   string
	locations []string
	columns   inventory.Columns
	exclude   map[string]bool
	progress  func(inventory.Progress)
	now       func() time.Time
}

// NewSource creates an inventory source for the given project and locations.
func NewSource(client ARAPI, project string, locations []string, cols inventory.Columns, exclude map[string]bool, progress func(inventory.Progress)) *Source {
	return &Source{
		client:    client,
		project:   project,
		locations: locations,
		columns:   cols.WithDefaults(),
		exclude:   exclude,
		progress:  progress,
		now:       time.Now,
	}
}

// Read implements inventory.Source. A failing location is skipped; the read
// fails only when every location fails.
func (s *Source) Read(ctx context.Context) ([]inventory.Record, error) {
	var (
		records []inventory.Record
		errs    []error
	)

	for _, location := range s.locations {
		s.reportProgress(location, fmt.Sprintf("Listing repositories in %s", location))

		repos, err := s.client.ListRepositories(ctx, s.project, location)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", location, err))
			continue
		}

		kept := 0
		for _, repo := range repos {
			if s.exclude[repo.RepoID] {
				continue
			}
			records = append(records, s.record(repo))
			kept++
		}
		s.reportProgress(location, fmt.Sprintf("Collected %d inventory records", kept))
	}

	if len(errs) > 0 && len(errs) == len(s.locations) {
		return nil, errors.Join(errs...)
	}
	return records, nil
}

func (s *Source) record(repo Repository) inventory.Record {
	rec := s.columns.Record(inventory.Row(repo.Labels))
	if rec.ServiceName == "" {
		rec.ServiceName = repo.RepoID
	}
	if rec.AssetClass == "" {
		rec.AssetClass = "artifact-registry/" + repo.Format
	}
	return rec
}

func (s *Source) reportProgress(location, msg string) {
	if s.progress == nil {
		return
	}
	s.progress(inventory.Progress{
		Region:    location,
		Source:    "artifactregistry",
		Message:   msg,
		Timestamp: s.now(),
	})
}
