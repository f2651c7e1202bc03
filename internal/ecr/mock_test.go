package ecr

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

// mockECRClient implements ECRAPI for testing.
type mockECRClient struct {
	pages       [][]ecrtypes.Repository
	tags        map[string][]ecrtypes.Tag // keyed by repository ARN
	descRepoErr error
	tagsErr     map[string]error
	calls       int
}

func newMockClient() *mockECRClient {
	return &mockECRClient{
		tags:    make(map[string][]ecrtypes.Tag),
		tagsErr: make(map[string]error),
	}
}

func (m *mockECRClient) DescribeRepositories(_ context.Context, input *ecr.DescribeRepositoriesInput, _ ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	if m.descRepoErr != nil {
		return nil, m.descRepoErr
	}
	m.calls++
	page := 0
	if input.NextToken != nil {
		page = len(aws.ToString(input.NextToken))
	}
	if page >= len(m.pages) {
		return &ecr.DescribeRepositoriesOutput{}, nil
	}
	out := &ecr.DescribeRepositoriesOutput{Repositories: m.pages[page]}
	if page+1 < len(m.pages) {
		// Token length encodes the next page index.
		token := make([]byte, page+1)
		for i := range token {
			token[i] = 'x'
		}
		out.NextToken = aws.String(string(token))
	}
	return out, nil
}

func (m *mockECRClient) ListTagsForResource(_ context.Context, input *ecr.ListTagsForResourceInput, _ ...func(*ecr.Options)) (*ecr.ListTagsForResourceOutput, error) {
	arn := aws.ToString(input.ResourceArn)
	if err, ok := m.tagsErr[arn]; ok {
		return nil, err
	}
	return &ecr.ListTagsForResourceOutput{Tags: m.tags[arn]}, nil
}

func (m *mockECRClient) addRepo(name string, tags map[string]string) {
	arn := "arn:aws:ecr:us-east-1:123456789012:repository/" + name
	if len(m.pages) == 0 {
		m.pages = append(m.pages, nil)
	}
	last := len(m.pages) - 1
	m.pages[last] = append(m.pages[last], ecrtypes.Repository{
		RepositoryName: aws.String(name),
		RepositoryArn:  aws.String(arn),
	})
	for k, v := range tags {
		m.tags[arn] = append(m.tags[arn], ecrtypes.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
}

func (m *mockECRClient) failTags(name string) {
	m.tagsErr["arn:aws:ecr:us-east-1:123456789012:repository/"+name] = errors.New("AccessDenied")
}
