package githubapi

import (
	"context"
	"time"

	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "githubapi"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) GetWorkflowRuns(ctx context.Context, token, repoOwner, repoName string) (runs []contracts.WorkflowRun, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetWorkflowRuns", err, ErrNotFound) }()

	return c.Client.GetWorkflowRuns(ctx, token, repoOwner, repoName)
}

func (c *loggingClient) GetTags(ctx context.Context, token, repoOwner, repoName string) (tags []string, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetTags", err, ErrNotFound) }()

	return c.Client.GetTags(ctx, token, repoOwner, repoName)
}

func (c *loggingClient) GetArtifacts(ctx context.Context, token, repoOwner, repoName string, runID int64) (artifacts []contracts.Artifact, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetArtifacts", err, ErrNotFound) }()

	return c.Client.GetArtifacts(ctx, token, repoOwner, repoName, runID)
}

func (c *loggingClient) DownloadArtifact(ctx context.Context, token, repoOwner, repoName string, artifactID int64) (content []byte, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "DownloadArtifact", err, ErrNotFound) }()

	return c.Client.DownloadArtifact(ctx, token, repoOwner, repoName, artifactID)
}

func (c *loggingClient) GetLastCommit(ctx context.Context, token, repoOwner, repoName string) (commit *contracts.Commit, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetLastCommit", err, ErrNotFound) }()

	return c.Client.GetLastCommit(ctx, token, repoOwner, repoName)
}

func (c *loggingClient) GetCommitCount(ctx context.Context, token, repoOwner, repoName string, since *time.Time) (count int, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetCommitCount", err, ErrNotFound) }()

	return c.Client.GetCommitCount(ctx, token, repoOwner, repoName, since)
}

func (c *loggingClient) GetContributorCount(ctx context.Context, token, repoOwner, repoName string, since time.Time) (count int, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetContributorCount", err, ErrNotFound) }()

	return c.Client.GetContributorCount(ctx, token, repoOwner, repoName, since)
}

func (c *loggingClient) GetTotalContributorCount(ctx context.Context, token, repoOwner, repoName string) (count int, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetTotalContributorCount", err, ErrNotFound) }()

	return c.Client.GetTotalContributorCount(ctx, token, repoOwner, repoName)
}

func (c *loggingClient) GetContributors(ctx context.Context, token, repoOwner, repoName string, limit int) (contributors []contracts.Contributor, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetContributors", err, ErrNotFound) }()

	return c.Client.GetContributors(ctx, token, repoOwner, repoName, limit)
}

func (c *loggingClient) GetCommitsBetween(ctx context.Context, token, repoOwner, repoName string, from, to time.Time) (count int, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetCommitsBetween", err, ErrNotFound) }()

	return c.Client.GetCommitsBetween(ctx, token, repoOwner, repoName, from, to)
}
