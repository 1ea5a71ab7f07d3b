package database

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "database"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Connect(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Connect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Connect(ctx)
}

func (c *tracingClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ConnectWithDriverAndSource"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *tracingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "AwaitDatabaseReadiness"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *tracingClient) MigrateSchema(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "MigrateSchema"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.MigrateSchema(ctx)
}

func (c *tracingClient) InsertBuild(ctx context.Context, build contracts.Build) (insertedBuild *contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "InsertBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.InsertBuild(ctx, build)
}

func (c *tracingClient) GetBuild(ctx context.Context, tenantID, buildID string) (build *contracts.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetBuild"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetBuild(ctx, tenantID, buildID)
}

func (c *tracingClient) UpdateBuildMetadataCache(ctx context.Context, tenantID, buildID string, cache contracts.MetadataCache) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UpdateBuildMetadataCache"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UpdateBuildMetadataCache(ctx, tenantID, buildID, cache)
}

func (c *tracingClient) UpsertWorkflowRuns(ctx context.Context, records []WorkflowRunRecord) (upserted int, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UpsertWorkflowRuns"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UpsertWorkflowRuns(ctx, records)
}

func (c *tracingClient) GetWorkflowRunIDs(ctx context.Context, tenantID, buildID string) (ids map[int64]struct{}, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetWorkflowRunIDs"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetWorkflowRunIDs(ctx, tenantID, buildID)
}

func (c *tracingClient) GetWorkflowRunsSince(ctx context.Context, tenantID, buildID string, since time.Time) (records []WorkflowRunRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetWorkflowRunsSince"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetWorkflowRunsSince(ctx, tenantID, buildID, since)
}

func (c *tracingClient) GetRecentWorkflowRuns(ctx context.Context, tenantID, buildID string, limit int) (records []WorkflowRunRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetRecentWorkflowRuns"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetRecentWorkflowRuns(ctx, tenantID, buildID, limit)
}

func (c *tracingClient) GetMonthlyRunStats(ctx context.Context, tenantID, buildID string, since time.Time) (stats []contracts.MonthStats, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetMonthlyRunStats"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetMonthlyRunStats(ctx, tenantID, buildID, since)
}

func (c *tracingClient) InsertTestResult(ctx context.Context, record TestResultRecord) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "InsertTestResult"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.InsertTestResult(ctx, record)
}

func (c *tracingClient) TestResultExists(ctx context.Context, tenantID, buildID string, githubRunID int64) (exists bool, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "TestResultExists"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.TestResultExists(ctx, tenantID, buildID, githubRunID)
}

func (c *tracingClient) GetLatestTestResult(ctx context.Context, tenantID, buildID string) (record *TestResultRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetLatestTestResult"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetLatestTestResult(ctx, tenantID, buildID)
}

func (c *tracingClient) GetTestResultSeries(ctx context.Context, tenantID, buildID string) (series []contracts.TestTrendPoint, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetTestResultSeries"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetTestResultSeries(ctx, tenantID, buildID)
}

func (c *tracingClient) GetBuildSyncStatus(ctx context.Context, tenantID, buildID string) (status *BuildSyncStatusRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetBuildSyncStatus"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetBuildSyncStatus(ctx, tenantID, buildID)
}

func (c *tracingClient) UpsertBuildSyncStatus(ctx context.Context, status BuildSyncStatusRecord) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UpsertBuildSyncStatus"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UpsertBuildSyncStatus(ctx, status)
}

func (c *tracingClient) UpdateBuildSyncSuccess(ctx context.Context, tenantID, buildID string, runsSynced int, lastSyncedAt time.Time, lastSyncedRunID *int64, lastSyncedRunCreatedAt *time.Time) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UpdateBuildSyncSuccess"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UpdateBuildSyncSuccess(ctx, tenantID, buildID, runsSynced, lastSyncedAt, lastSyncedRunID, lastSyncedRunCreatedAt)
}

func (c *tracingClient) MarkInitialBackfillCompleted(ctx context.Context, tenantID, buildID string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "MarkInitialBackfillCompleted"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.MarkInitialBackfillCompleted(ctx, tenantID, buildID)
}

func (c *tracingClient) UpdateBuildSyncError(ctx context.Context, tenantID, buildID, message string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UpdateBuildSyncError"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UpdateBuildSyncError(ctx, tenantID, buildID, message)
}

func (c *tracingClient) GetAccessToken(ctx context.Context, tenantID, accessTokenID string) (token *AccessTokenRecord, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetAccessToken"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetAccessToken(ctx, tenantID, accessTokenID)
}
