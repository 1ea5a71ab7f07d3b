package githubapi

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "githubapi"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) GetWorkflowRuns(ctx context.Context, token, repoOwner, repoName string) (runs []contracts.WorkflowRun, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetWorkflowRuns"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetWorkflowRuns(ctx, token, repoOwner, repoName)
}

func (c *tracingClient) GetTags(ctx context.Context, token, repoOwner, repoName string) (tags []string, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetTags"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetTags(ctx, token, repoOwner, repoName)
}

func (c *tracingClient) GetArtifacts(ctx context.Context, token, repoOwner, repoName string, runID int64) (artifacts []contracts.Artifact, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetArtifacts"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetArtifacts(ctx, token, repoOwner, repoName, runID)
}

func (c *tracingClient) DownloadArtifact(ctx context.Context, token, repoOwner, repoName string, artifactID int64) (content []byte, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "DownloadArtifact"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.DownloadArtifact(ctx, token, repoOwner, repoName, artifactID)
}

func (c *tracingClient) GetLastCommit(ctx context.Context, token, repoOwner, repoName string) (commit *contracts.Commit, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetLastCommit"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetLastCommit(ctx, token, repoOwner, repoName)
}

func (c *tracingClient) GetCommitCount(ctx context.Context, token, repoOwner, repoName string, since *time.Time) (count int, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetCommitCount"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetCommitCount(ctx, token, repoOwner, repoName, since)
}

func (c *tracingClient) GetContributorCount(ctx context.Context, token, repoOwner, repoName string, since time.Time) (count int, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetContributorCount"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetContributorCount(ctx, token, repoOwner, repoName, since)
}

func (c *tracingClient) GetTotalContributorCount(ctx context.Context, token, repoOwner, repoName string) (count int, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetTotalContributorCount"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetTotalContributorCount(ctx, token, repoOwner, repoName)
}

func (c *tracingClient) GetContributors(ctx context.Context, token, repoOwner, repoName string, limit int) (contributors []contracts.Contributor, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetContributors"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetContributors(ctx, token, repoOwner, repoName, limit)
}

func (c *tracingClient) GetCommitsBetween(ctx context.Context, token, repoOwner, repoName string, from, to time.Time) (count int, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetCommitsBetween"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetCommitsBetween(ctx, token, repoOwner, repoName, from, to)
}
