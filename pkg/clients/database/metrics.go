package database

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

func (c *metricsClient) Connect(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "Connect", begin) }(time.Now())

	return c.Client.Connect(ctx)
}

func (c *metricsClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "ConnectWithDriverAndSource", begin)
	}(time.Now())

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *metricsClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "AwaitDatabaseReadiness", begin)
	}(time.Now())

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *metricsClient) MigrateSchema(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "MigrateSchema", begin) }(time.Now())

	return c.Client.MigrateSchema(ctx)
}

func (c *metricsClient) InsertBuild(ctx context.Context, build contracts.Build) (insertedBuild *contracts.Build, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "InsertBuild", begin) }(time.Now())

	return c.Client.InsertBuild(ctx, build)
}

func (c *metricsClient) GetBuild(ctx context.Context, tenantID, buildID string) (build *contracts.Build, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetBuild", begin) }(time.Now())

	return c.Client.GetBuild(ctx, tenantID, buildID)
}

func (c *metricsClient) UpdateBuildMetadataCache(ctx context.Context, tenantID, buildID string, cache contracts.MetadataCache) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "UpdateBuildMetadataCache", begin)
	}(time.Now())

	return c.Client.UpdateBuildMetadataCache(ctx, tenantID, buildID, cache)
}

func (c *metricsClient) UpsertWorkflowRuns(ctx context.Context, records []WorkflowRunRecord) (upserted int, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "UpsertWorkflowRuns", begin)
	}(time.Now())

	return c.Client.UpsertWorkflowRuns(ctx, records)
}

func (c *metricsClient) GetWorkflowRunIDs(ctx context.Context, tenantID, buildID string) (ids map[int64]struct{}, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetWorkflowRunIDs", begin)
	}(time.Now())

	return c.Client.GetWorkflowRunIDs(ctx, tenantID, buildID)
}

func (c *metricsClient) GetWorkflowRunsSince(ctx context.Context, tenantID, buildID string, since time.Time) (records []WorkflowRunRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetWorkflowRunsSince", begin)
	}(time.Now())

	return c.Client.GetWorkflowRunsSince(ctx, tenantID, buildID, since)
}

func (c *metricsClient) GetRecentWorkflowRuns(ctx context.Context, tenantID, buildID string, limit int) (records []WorkflowRunRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetRecentWorkflowRuns", begin)
	}(time.Now())

	return c.Client.GetRecentWorkflowRuns(ctx, tenantID, buildID, limit)
}

func (c *metricsClient) GetMonthlyRunStats(ctx context.Context, tenantID, buildID string, since time.Time) (stats []contracts.MonthStats, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetMonthlyRunStats", begin)
	}(time.Now())

	return c.Client.GetMonthlyRunStats(ctx, tenantID, buildID, since)
}

func (c *metricsClient) InsertTestResult(ctx context.Context, record TestResultRecord) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "InsertTestResult", begin)
	}(time.Now())

	return c.Client.InsertTestResult(ctx, record)
}

func (c *metricsClient) TestResultExists(ctx context.Context, tenantID, buildID string, githubRunID int64) (exists bool, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "TestResultExists", begin)
	}(time.Now())

	return c.Client.TestResultExists(ctx, tenantID, buildID, githubRunID)
}

func (c *metricsClient) GetLatestTestResult(ctx context.Context, tenantID, buildID string) (record *TestResultRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetLatestTestResult", begin)
	}(time.Now())

	return c.Client.GetLatestTestResult(ctx, tenantID, buildID)
}

func (c *metricsClient) GetTestResultSeries(ctx context.Context, tenantID, buildID string) (series []contracts.TestTrendPoint, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetTestResultSeries", begin)
	}(time.Now())

	return c.Client.GetTestResultSeries(ctx, tenantID, buildID)
}

func (c *metricsClient) GetBuildSyncStatus(ctx context.Context, tenantID, buildID string) (status *BuildSyncStatusRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetBuildSyncStatus", begin)
	}(time.Now())

	return c.Client.GetBuildSyncStatus(ctx, tenantID, buildID)
}

func (c *metricsClient) UpsertBuildSyncStatus(ctx context.Context, status BuildSyncStatusRecord) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "UpsertBuildSyncStatus", begin)
	}(time.Now())

	return c.Client.UpsertBuildSyncStatus(ctx, status)
}

func (c *metricsClient) UpdateBuildSyncSuccess(ctx context.Context, tenantID, buildID string, runsSynced int, lastSyncedAt time.Time, lastSyncedRunID *int64, lastSyncedRunCreatedAt *time.Time) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "UpdateBuildSyncSuccess", begin)
	}(time.Now())

	return c.Client.UpdateBuildSyncSuccess(ctx, tenantID, buildID, runsSynced, lastSyncedAt, lastSyncedRunID, lastSyncedRunCreatedAt)
}

func (c *metricsClient) MarkInitialBackfillCompleted(ctx context.Context, tenantID, buildID string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "MarkInitialBackfillCompleted", begin)
	}(time.Now())

	return c.Client.MarkInitialBackfillCompleted(ctx, tenantID, buildID)
}

func (c *metricsClient) UpdateBuildSyncError(ctx context.Context, tenantID, buildID, message string) (err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "UpdateBuildSyncError", begin)
	}(time.Now())

	return c.Client.UpdateBuildSyncError(ctx, tenantID, buildID, message)
}

func (c *metricsClient) GetAccessToken(ctx context.Context, tenantID, accessTokenID string) (token *AccessTokenRecord, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(c.requestCount, c.requestLatency, "GetAccessToken", begin)
	}(time.Now())

	return c.Client.GetAccessToken(ctx, tenantID, accessTokenID)
}
