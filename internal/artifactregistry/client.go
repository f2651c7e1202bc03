package artifactregistry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ar "cloud.google.com/go/artifactregistry/apiv1"
	arpb "cloud.google.com/go/artifactregistry/apiv1/artifactregistrypb"
	"google.golang.org/api/iterator"
)

// Repository represents a GCP Artifact Registry repository.
type Repository struct {
	Name     string // full resource name
	Location string
	RepoID   string
	Format   string
	Labels   map[string]string
}

// ARAPI defines the subset of the Artifact Registry API used by the inventory source.
type ARAPI interface {
	ListRepositories(ctx context.Context, project, location string) ([]Repository, error)
	Close() error
}

// Client implements ARAPI using the real GCP SDK.
type Client struct {
	inner *ar.Client
}

// NewClient creates a new Artifact Registry client.
func NewClient(ctx context.Context) (*Client, error) {
	c, err := ar.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create artifact registry client: %w", err)
	}
	return &Client{inner: c}, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.inner.Close()
}

// ListRepositories returns all repositories in a given location, of any format.
func (c *Client) ListRepositories(ctx context.Context, project, location string) ([]Repository, error) {
	parent := fmt.Sprintf("projects/%s/locations/%s", project, location)
	it := c.inner.ListRepositories(ctx, &arpb.ListRepositoriesRequest{
		Parent: parent,
	})

	var repos []Repository
	for {
		repo, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list repositories in %s: %w", parent, err)
		}
		repos = append(repos, Repository{
			Name:     repo.GetName(),
			Location: location,
			RepoID:   extractRepoID(repo.GetName()),
			Format:   strings.ToLower(repo.GetFormat().String()),
			Labels:   repo.GetLabels(),
		})
	}

	slog.Debug("Listed AR repositories", "location", location, "count", len(repos))
	return repos, nil
}

// extractRepoID extracts the repository ID from a full resource name.
// Format: projects/{project}/locations/{location}/repositories/{repo}
func extractRepoID(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
