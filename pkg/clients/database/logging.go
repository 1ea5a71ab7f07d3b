package database

import (
	"context"
	"time"

	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "database"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Connect(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Connect", err) }()

	return c.Client.Connect(ctx)
}

func (c *loggingClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ConnectWithDriverAndSource", err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *loggingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "AwaitDatabaseReadiness", err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *loggingClient) MigrateSchema(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "MigrateSchema", err) }()

	return c.Client.MigrateSchema(ctx)
}

func (c *loggingClient) InsertBuild(ctx context.Context, build contracts.Build) (insertedBuild *contracts.Build, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "InsertBuild", err) }()

	return c.Client.InsertBuild(ctx, build)
}

func (c *loggingClient) GetBuild(ctx context.Context, tenantID, buildID string) (build *contracts.Build, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetBuild", err, ErrBuildNotFound) }()

	return c.Client.GetBuild(ctx, tenantID, buildID)
}

func (c *loggingClient) UpdateBuildMetadataCache(ctx context.Context, tenantID, buildID string, cache contracts.MetadataCache) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UpdateBuildMetadataCache", err) }()

	return c.Client.UpdateBuildMetadataCache(ctx, tenantID, buildID, cache)
}

func (c *loggingClient) UpsertWorkflowRuns(ctx context.Context, records []WorkflowRunRecord) (upserted int, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UpsertWorkflowRuns", err) }()

	return c.Client.UpsertWorkflowRuns(ctx, records)
}

func (c *loggingClient) GetWorkflowRunIDs(ctx context.Context, tenantID, buildID string) (ids map[int64]struct{}, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetWorkflowRunIDs", err) }()

	return c.Client.GetWorkflowRunIDs(ctx, tenantID, buildID)
}

func (c *loggingClient) GetWorkflowRunsSince(ctx context.Context, tenantID, buildID string, since time.Time) (records []WorkflowRunRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetWorkflowRunsSince", err) }()

	return c.Client.GetWorkflowRunsSince(ctx, tenantID, buildID, since)
}

func (c *loggingClient) GetRecentWorkflowRuns(ctx context.Context, tenantID, buildID string, limit int) (records []WorkflowRunRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetRecentWorkflowRuns", err) }()

	return c.Client.GetRecentWorkflowRuns(ctx, tenantID, buildID, limit)
}

func (c *loggingClient) GetMonthlyRunStats(ctx context.Context, tenantID, buildID string, since time.Time) (stats []contracts.MonthStats, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetMonthlyRunStats", err) }()

	return c.Client.GetMonthlyRunStats(ctx, tenantID, buildID, since)
}

func (c *loggingClient) InsertTestResult(ctx context.Context, record TestResultRecord) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "InsertTestResult", err) }()

	return c.Client.InsertTestResult(ctx, record)
}

func (c *loggingClient) TestResultExists(ctx context.Context, tenantID, buildID string, githubRunID int64) (exists bool, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "TestResultExists", err) }()

	return c.Client.TestResultExists(ctx, tenantID, buildID, githubRunID)
}

func (c *loggingClient) GetLatestTestResult(ctx context.Context, tenantID, buildID string) (record *TestResultRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetLatestTestResult", err) }()

	return c.Client.GetLatestTestResult(ctx, tenantID, buildID)
}

func (c *loggingClient) GetTestResultSeries(ctx context.Context, tenantID, buildID string) (series []contracts.TestTrendPoint, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetTestResultSeries", err) }()

	return c.Client.GetTestResultSeries(ctx, tenantID, buildID)
}

func (c *loggingClient) GetBuildSyncStatus(ctx context.Context, tenantID, buildID string) (status *BuildSyncStatusRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetBuildSyncStatus", err) }()

	return c.Client.GetBuildSyncStatus(ctx, tenantID, buildID)
}

func (c *loggingClient) UpsertBuildSyncStatus(ctx context.Context, status BuildSyncStatusRecord) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UpsertBuildSyncStatus", err) }()

	return c.Client.UpsertBuildSyncStatus(ctx, status)
}

func (c *loggingClient) UpdateBuildSyncSuccess(ctx context.Context, tenantID, buildID string, runsSynced int, lastSyncedAt time.Time, lastSyncedRunID *int64, lastSyncedRunCreatedAt *time.Time) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UpdateBuildSyncSuccess", err) }()

	return c.Client.UpdateBuildSyncSuccess(ctx, tenantID, buildID, runsSynced, lastSyncedAt, lastSyncedRunID, lastSyncedRunCreatedAt)
}

func (c *loggingClient) MarkInitialBackfillCompleted(ctx context.Context, tenantID, buildID string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "MarkInitialBackfillCompleted", err) }()

	return c.Client.MarkInitialBackfillCompleted(ctx, tenantID, buildID)
}

func (c *loggingClient) UpdateBuildSyncError(ctx context.Context, tenantID, buildID, message string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UpdateBuildSyncError", err) }()

	return c.Client.UpdateBuildSyncError(ctx, tenantID, buildID, message)
}

func (c *loggingClient) GetAccessToken(ctx context.Context, tenantID, accessTokenID string) (token *AccessTokenRecord, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetAccessToken", err, ErrAccessTokenNotFound) }()

	return c.Client.GetAccessToken(ctx, tenantID, accessTokenID)
}
