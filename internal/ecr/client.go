package ecr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

// ECRAPI defines the subset of the ECR API used by the inventory source.
type ECRAPI interface {
	DescribeRepositories(ctx context.Context, input *ecr.DescribeRepositoriesInput, opts ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	ListTagsForResource(ctx context.Context, input *ecr.ListTagsForResourceInput, opts ...func(*ecr.Options)) (*ecr.ListTagsForResourceOutput, error)
}

// Client wraps the AWS SDK configuration for creating ECR service clients.
type Client struct {
	cfg aws.Config
}

// NewClient creates a new AWS client using the specified profile and region.
func NewClient(ctx context.Context, profile, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error

	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Client{cfg: cfg}, nil
}

// NewECRClient creates an ECR service client from the stored config.
func (c *Client) NewECRClient() ECRAPI {
	return ecr.NewFromConfig(c.cfg)
}

// Region returns the configured region.
func (c *Client) Region() string {
	return c.cfg.Region
}

// ListRepositories returns all ECR repositories using pagination.
func ListRepositories(ctx context.Context, client ECRAPI) ([]ecrtypes.Repository, error) {
	var repos []ecrtypes.Repository
	input := &ecr.DescribeRepositoriesInput{}

	for {
		out, err := client.DescribeRepositories(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("describe repositories: %w", err)
		}
		repos = append(repos, out.Repositories...)
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	slog.Debug("Listed ECR repositories", "count", len(repos))
	return repos, nil
}

// RepositoryTags returns the tags of a repository as a key/value map.
func RepositoryTags(ctx context.Context, client ECRAPI, repoARN string) (map[string]string, error) {
	out, err := client.ListTagsForResource(ctx, &ecr.ListTagsForResourceInput{
		ResourceArn: aws.String(repoARN),
	})
	if err != nil {
		return nil, fmt.Errorf("list tags for %s: %w", repoARN, err)
	}

	tags := make(map[string]string, len(out.Tags))
	for _, t := range out.Tags {
		tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return tags, nil
}
