package githubapi

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) GetWorkflowRuns(ctx context.Context, token, repoOwner, repoName string) (runs []contracts.WorkflowRun, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetWorkflowRuns", begin)
	}(time.Now())

	return c.Client.GetWorkflowRuns(ctx, token, repoOwner, repoName)
}

func (c *metricsClient) GetTags(ctx context.Context, token, repoOwner, repoName string) (tags []string, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetTags", begin)
	}(time.Now())

	return c.Client.GetTags(ctx, token, repoOwner, repoName)
}

func (c *metricsClient) GetArtifacts(ctx context.Context, token, repoOwner, repoName string, runID int64) (artifacts []contracts.Artifact, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetArtifacts", begin)
	}(time.Now())

	return c.Client.GetArtifacts(ctx, token, repoOwner, repoName, runID)
}

func (c *metricsClient) DownloadArtifact(ctx context.Context, token, repoOwner, repoName string, artifactID int64) (content []byte, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "DownloadArtifact", begin)
	}(time.Now())

	return c.Client.DownloadArtifact(ctx, token, repoOwner, repoName, artifactID)
}

func (c *metricsClient) GetLastCommit(ctx context.Context, token, repoOwner, repoName string) (commit *contracts.Commit, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetLastCommit", begin)
	}(time.Now())

	return c.Client.GetLastCommit(ctx, token, repoOwner, repoName)
}

func (c *metricsClient) GetCommitCount(ctx context.Context, token, repoOwner, repoName string, since *time.Time) (count int, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetCommitCount", begin)
	}(time.Now())

	return c.Client.GetCommitCount(ctx, token, repoOwner, repoName, since)
}

func (c *metricsClient) GetContributorCount(ctx context.Context, token, repoOwner, repoName string, since time.Time) (count int, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetContributorCount", begin)
	}(time.Now())

	return c.Client.GetContributorCount(ctx, token, repoOwner, repoName, since)
}

func (c *metricsClient) GetTotalContributorCount(ctx context.Context, token, repoOwner, repoName string) (count int, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetTotalContributorCount", begin)
	}(time.Now())

	return c.Client.GetTotalContributorCount(ctx, token, repoOwner, repoName)
}

func (c *metricsClient) GetContributors(ctx context.Context, token, repoOwner, repoName string, limit int) (contributors []contracts.Contributor, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetContributors", begin)
	}(time.Now())

	return c.Client.GetContributors(ctx, token, repoOwner, repoName, limit)
}

func (c *metricsClient) GetCommitsBetween(ctx context.Context, token, repoOwner, repoName string, from, to time.Time) (count int, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetCommitsBetween", begin)
	}(time.Now())

	return c.Client.GetCommitsBetween(ctx, token, repoOwner, repoName, from, to)
}
