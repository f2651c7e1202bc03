package artifactregistry

import (
	"context"
)

// mockARClient implements ARAPI for testing.
type mockARClient struct {
	repos       map[string][]Repository // keyed by "project/location"
	listRepoErr map[string]error        // keyed by "project/location"
}

func newMockClient() *mockARClient {
	return &mockARClient{
		repos:       make(map[string][]Repository),
		listRepoErr: make(map[string]error),
	}
}

func (m *mockARClient) ListRepositories(_ context.Context, project, location string) ([]Repository, error) {
	key := project + "/" + location
	if err, ok := m.listRepoErr[key]; ok {
		return nil, err
	}
	return m.repos[key], nil
}

func (m *mockARClient) Close() error {
	return nil
}

func makeRepo(project, location, repoID, format string, labels map[string]string) Repository {
	return Repository{
		Name:     "projects/" + project + "/locations/" + location + "/repositories/" + repoID,
		Location: location,
		RepoID:   repoID,
		Format:   format,
		Labels:   labels,
	}
}
