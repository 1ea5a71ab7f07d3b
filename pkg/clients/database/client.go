package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	foundation "github.com/estafette/estafette-foundation"
	"github.com/google/uuid"
	_ "github.com/lib/pq" // use postgres client library to connect to cockroachdb
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/clients/database/queries"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/rs/zerolog/log"
)

var (
	// ErrBuildNotFound is returned if a query for a build returns no results
	ErrBuildNotFound = errors.New("the build can't be found")

	// ErrAccessTokenNotFound is returned if a query for an access token returns no results
	ErrAccessTokenNotFound = errors.New("the access token can't be found")
)

// Client is the interface for communicating with the database
//
//go:generate mockgen -package=database -destination ./mock.go -source=client.go
type Client interface {
	Connect(ctx context.Context) (err error)
	ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error)
	AwaitDatabaseReadiness(ctx context.Context) (err error)
	MigrateSchema(ctx context.Context) (err error)

	InsertBuild(ctx context.Context, build contracts.Build) (insertedBuild *contracts.Build, err error)
	GetBuild(ctx context.Context, tenantID, buildID string) (build *contracts.Build, err error)
	UpdateBuildMetadataCache(ctx context.Context, tenantID, buildID string, cache contracts.MetadataCache) (err error)

	UpsertWorkflowRuns(ctx context.Context, records []WorkflowRunRecord) (upserted int, err error)
	GetWorkflowRunIDs(ctx context.Context, tenantID, buildID string) (ids map[int64]struct{}, err error)
	GetWorkflowRunsSince(ctx context.Context, tenantID, buildID string, since time.Time) (records []WorkflowRunRecord, err error)
	GetRecentWorkflowRuns(ctx context.Context, tenantID, buildID string, limit int) (records []WorkflowRunRecord, err error)
	GetMonthlyRunStats(ctx context.Context, tenantID, buildID string, since time.Time) (stats []contracts.MonthStats, err error)

	InsertTestResult(ctx context.Context, record TestResultRecord) (err error)
	TestResultExists(ctx context.Context, tenantID, buildID string, githubRunID int64) (exists bool, err error)
	GetLatestTestResult(ctx context.Context, tenantID, buildID string) (record *TestResultRecord, err error)
	GetTestResultSeries(ctx context.Context, tenantID, buildID string) (series []contracts.TestTrendPoint, err error)

	GetBuildSyncStatus(ctx context.Context, tenantID, buildID string) (status *BuildSyncStatusRecord, err error)
	UpsertBuildSyncStatus(ctx context.Context, status BuildSyncStatusRecord) (err error)
	UpdateBuildSyncSuccess(ctx context.Context, tenantID, buildID string, runsSynced int, lastSyncedAt time.Time, lastSyncedRunID *int64, lastSyncedRunCreatedAt *time.Time) (err error)
	MarkInitialBackfillCompleted(ctx context.Context, tenantID, buildID string) (err error)
	UpdateBuildSyncError(ctx context.Context, tenantID, buildID, message string) (err error)

	GetAccessToken(ctx context.Context, tenantID, accessTokenID string) (token *AccessTokenRecord, err error)
}

// NewClient returns a new database.Client
func NewClient(config *api.APIConfig) Client {
	return &client{
		config:         config,
		databaseDriver: "postgres",
	}
}

type client struct {
	databaseDriver     string
	config             *api.APIConfig
	databaseConnection *sql.DB
}

func (c *client) Connect(ctx context.Context) (err error) {

	log.Debug().Msgf("Connecting to database %v on host %v...", c.config.Database.DatabaseName, c.config.Database.Host)

	userAndPassword := c.config.Database.User
	if c.config.Database.Password != "" {
		userAndPassword += ":" + c.config.Database.Password
	}

	dataSourceName := ""
	if c.config.Database.Insecure {
		dataSourceName = fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=disable", userAndPassword, c.config.Database.Host, c.config.Database.Port, c.config.Database.DatabaseName)
	} else {
		dataSourceName = fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=%v&sslrootcert=%v&sslcert=%v&sslkey=%v", userAndPassword, c.config.Database.Host, c.config.Database.Port, c.config.Database.DatabaseName, c.config.Database.SslMode, c.config.Database.CertificateAuthorityPath, c.config.Database.CertificatePath, c.config.Database.CertificateKeyPath)
	}

	return c.ConnectWithDriverAndSource(ctx, c.databaseDriver, dataSourceName)
}

func (c *client) ConnectWithDriverAndSource(_ context.Context, driverName, dataSourceName string) (err error) {

	log.Debug().Msgf("Opening database connection with driver %v...", driverName)
	c.databaseConnection, err = sql.Open(driverName, dataSourceName)
	if err != nil {
		return
	}

	if c.config.Database.MaxOpenConns > 0 {
		c.databaseConnection.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	}

	if c.config.Database.MaxIdleConns > 0 {
		c.databaseConnection.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	}

	if c.config.Database.ConnMaxLifetimeMinutes > 0 {
		c.databaseConnection.SetConnMaxLifetime(time.Duration(c.config.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}

	return
}

func (c *client) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	return foundation.Retry(func() error {
		log.Debug().Msg("Checking if database is ready...")
		return c.databaseConnection.PingContext(ctx)
	}, foundation.Attempts(12), foundation.DelayMillisecond(5000), foundation.Fixed())
}

// MigrateSchema creates the tables and indexes when they do not exist yet
func (c *client) MigrateSchema(ctx context.Context) (err error) {

	migrations := []string{
		queries.MigrateBuilds,
		queries.MigrateWorkflowRuns,
		queries.MigrateTestResults,
		queries.MigrateBuildSyncStatus,
		queries.MigrateAccessTokens,
	}

	for _, migration := range migrations {
		if _, err = c.databaseConnection.ExecContext(ctx, migration); err != nil {
			return
		}
	}

	return
}

func (c *client) InsertBuild(ctx context.Context, build contracts.Build) (insertedBuild *contracts.Build, err error) {

	if build.ID == "" {
		build.ID = uuid.New().String()
	}

	selectorsData, err := json.Marshal(build.Selectors)
	if err != nil {
		return
	}
	tagsData, err := json.Marshal(build.Tags)
	if err != nil {
		return
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Insert("builds").
		Columns("id", "tenant_id", "name", "repo_owner", "repo_name", "inline_token", "access_token_id", "selectors", "tags", "last_analyzed_commit_sha", "total_commits", "total_contributors", "cached_commits_last_7_days", "cached_contributors_last_7_days").
		Values(build.ID, build.TenantID, build.Name, build.RepoOwner, build.RepoName, build.InlineToken, nullableString(build.AccessTokenID), selectorsData, tagsData, build.LastAnalyzedCommitSha, build.TotalCommits, build.TotalContributors, build.CachedCommitsLast7Days, build.CachedContributorsLast7Days)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	if _, err = c.databaseConnection.ExecContext(ctx, sqlQuery, args...); err != nil {
		return nil, err
	}

	return &build, nil
}

func (c *client) GetBuild(ctx context.Context, tenantID, buildID string) (build *contracts.Build, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("id", "tenant_id", "name", "repo_owner", "repo_name", "inline_token", "access_token_id", "selectors", "tags", "last_analyzed_commit_sha", "total_commits", "total_contributors", "cached_commits_last_7_days", "cached_contributors_last_7_days", "inserted_at", "updated_at").
		From("builds").
		Where(sq.Eq{"id": buildID}).
		Where(sq.Eq{"tenant_id": tenantID}).
		Limit(1)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	row := c.databaseConnection.QueryRowContext(ctx, sqlQuery, args...)

	build = &contracts.Build{}
	var accessTokenID sql.NullString
	var selectorsData, tagsData []byte

	if err = row.Scan(&build.ID, &build.TenantID, &build.Name, &build.RepoOwner, &build.RepoName, &build.InlineToken, &accessTokenID, &selectorsData, &tagsData, &build.LastAnalyzedCommitSha, &build.TotalCommits, &build.TotalContributors, &build.CachedCommitsLast7Days, &build.CachedContributorsLast7Days, &build.InsertedAt, &build.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildNotFound
		}
		return nil, err
	}

	build.AccessTokenID = accessTokenID.String

	if len(selectorsData) > 0 {
		if err = json.Unmarshal(selectorsData, &build.Selectors); err != nil {
			return nil, err
		}
	}
	if len(tagsData) > 0 {
		if err = json.Unmarshal(tagsData, &build.Tags); err != nil {
			return nil, err
		}
	}

	return build, nil
}

func (c *client) UpdateBuildMetadataCache(ctx context.Context, tenantID, buildID string, cache contracts.MetadataCache) (err error) {

	tagsData, err := json.Marshal(cache.Tags)
	if err != nil {
		return
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Update("builds").
		Set("last_analyzed_commit_sha", cache.LastAnalyzedCommitSha).
		Set("tags", tagsData).
		Set("total_commits", cache.TotalCommits).
		Set("total_contributors", cache.TotalContributors).
		Set("cached_commits_last_7_days", cache.CachedCommitsLast7Days).
		Set("cached_contributors_last_7_days", cache.CachedContributorsLast7Days).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": buildID}).
		Where(sq.Eq{"tenant_id": tenantID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	_, err = c.databaseConnection.ExecContext(ctx, sqlQuery, args...)

	return
}

// UpsertWorkflowRuns inserts or updates the passed records in a single statement keyed on
// (build_id, github_run_id); re-running with unchanged upstream data leaves the table as is
func (c *client) UpsertWorkflowRuns(ctx context.Context, records []WorkflowRunRecord) (upserted int, err error) {

	if len(records) == 0 {
		return 0, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Insert("workflow_runs").
		Columns("id", "tenant_id", "build_id", "github_run_id", "name", "status", "conclusion", "url", "head_branch", "event", "duration_seconds", "commit_sha", "commit_message", "commit_author", "commit_date", "run_created_at", "run_updated_at", "synced_at")

	for _, record := range records {
		id := record.ID
		if id == "" {
			id = uuid.New().String()
		}
		query = query.Values(id, record.TenantID, record.BuildID, record.GithubRunID, record.Name, record.Status, record.Conclusion, record.URL, record.HeadBranch, record.Event, record.DurationSeconds, record.CommitSha, record.CommitMessage, record.CommitAuthor, record.CommitDate, record.RunCreatedAt, record.RunUpdatedAt, record.SyncedAt)
	}

	query = query.Suffix(`
		ON CONFLICT (build_id, github_run_id)
		DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			conclusion = excluded.conclusion,
			url = excluded.url,
			head_branch = excluded.head_branch,
			event = excluded.event,
			duration_seconds = excluded.duration_seconds,
			commit_sha = excluded.commit_sha,
			commit_message = excluded.commit_message,
			commit_author = excluded.commit_author,
			commit_date = excluded.commit_date,
			run_updated_at = excluded.run_updated_at,
			synced_at = excluded.synced_at`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	if _, err = c.databaseConnection.ExecContext(ctx, sqlQuery, args...); err != nil {
		return
	}

	return len(records), nil
}

func (c *client) GetWorkflowRunIDs(ctx context.Context, tenantID, buildID string) (ids map[int64]struct{}, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("github_run_id").
		From("workflow_runs").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.Eq{"build_id": buildID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	rows, err := c.databaseConnection.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return
	}
	defer rows.Close()

	ids = map[int64]struct{}{}
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return
		}
		ids[id] = struct{}{}
	}

	return ids, rows.Err()
}

func (c *client) GetWorkflowRunsSince(ctx context.Context, tenantID, buildID string, since time.Time) (records []WorkflowRunRecord, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select(workflowRunColumns...).
		From("workflow_runs").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.Eq{"build_id": buildID}).
		Where(sq.GtOrEq{"run_created_at": since}).
		OrderBy("run_created_at DESC")

	return c.queryWorkflowRuns(ctx, query)
}

func (c *client) GetRecentWorkflowRuns(ctx context.Context, tenantID, buildID string, limit int) (records []WorkflowRunRecord, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select(workflowRunColumns...).
		From("workflow_runs").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.Eq{"build_id": buildID}).
		OrderBy("run_created_at DESC").
		Limit(uint64(limit))

	return c.queryWorkflowRuns(ctx, query)
}

// GetMonthlyRunStats groups run outcomes per calendar month (UTC) since the passed moment
func (c *client) GetMonthlyRunStats(ctx context.Context, tenantID, buildID string, since time.Time) (stats []contracts.MonthStats, err error) {

	rows, err := c.databaseConnection.QueryContext(ctx,
		`
		SELECT
			EXTRACT(YEAR FROM run_created_at AT TIME ZONE 'UTC')::INT AS year,
			EXTRACT(MONTH FROM run_created_at AT TIME ZONE 'UTC')::INT AS month,
			COUNT(CASE WHEN status = 'success' THEN 1 END)::INT AS successes,
			COUNT(CASE WHEN status = 'failure' THEN 1 END)::INT AS failures,
			COUNT(*)::INT AS total
		FROM
			workflow_runs
		WHERE
			tenant_id=$1 AND
			build_id=$2 AND
			run_created_at >= $3
		GROUP BY
			year, month
		ORDER BY
			year, month
		`,
		tenantID,
		buildID,
		since,
	)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var stat contracts.MonthStats
		if err = rows.Scan(&stat.Year, &stat.Month, &stat.SuccessCount, &stat.FailureCount, &stat.TotalCount); err != nil {
			return
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}

func (c *client) InsertTestResult(ctx context.Context, record TestResultRecord) (err error) {

	id := record.ID
	if id == "" {
		id = uuid.New().String()
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Insert("test_results").
		Columns("id", "tenant_id", "build_id", "github_run_id", "total_tests", "passed_tests", "failed_tests", "skipped_tests", "test_cases", "artifact_name", "artifact_url", "parsed_at").
		Values(id, record.TenantID, record.BuildID, record.GithubRunID, record.TotalTests, record.PassedTests, record.FailedTests, record.SkippedTests, nullableString(record.TestCases), record.ArtifactName, record.ArtifactURL, record.ParsedAt).
		Suffix("ON CONFLICT (build_id, github_run_id) DO NOTHING")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	_, err = c.databaseConnection.ExecContext(ctx, sqlQuery, args...)

	return
}

func (c *client) TestResultExists(ctx context.Context, tenantID, buildID string, githubRunID int64) (exists bool, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("COUNT(*)").
		From("test_results").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.Eq{"build_id": buildID}).
		Where(sq.Eq{"github_run_id": githubRunID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	var count int
	if err = c.databaseConnection.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return
	}

	return count > 0, nil
}

func (c *client) GetLatestTestResult(ctx context.Context, tenantID, buildID string) (record *TestResultRecord, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("id", "tenant_id", "build_id", "github_run_id", "total_tests", "passed_tests", "failed_tests", "skipped_tests", "artifact_name", "artifact_url", "parsed_at").
		From("test_results").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.Eq{"build_id": buildID}).
		OrderBy("parsed_at DESC").
		Limit(1)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	record = &TestResultRecord{}
	if err = c.databaseConnection.QueryRowContext(ctx, sqlQuery, args...).Scan(&record.ID, &record.TenantID, &record.BuildID, &record.GithubRunID, &record.TotalTests, &record.PassedTests, &record.FailedTests, &record.SkippedTests, &record.ArtifactName, &record.ArtifactURL, &record.ParsedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

// GetTestResultSeries returns one point per run with a parsed test result, oldest first
func (c *client) GetTestResultSeries(ctx context.Context, tenantID, buildID string) (series []contracts.TestTrendPoint, err error) {

	rows, err := c.databaseConnection.QueryContext(ctx,
		`
		SELECT
			t.github_run_id,
			r.run_created_at,
			t.total_tests,
			t.passed_tests,
			t.failed_tests,
			t.skipped_tests
		FROM
			test_results t
		INNER JOIN
			workflow_runs r
		ON
			r.build_id = t.build_id AND
			r.github_run_id = t.github_run_id
		WHERE
			t.tenant_id=$1 AND
			t.build_id=$2
		ORDER BY
			r.run_created_at ASC
		`,
		tenantID,
		buildID,
	)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var point contracts.TestTrendPoint
		if err = rows.Scan(&point.GithubRunID, &point.RunCreatedAt, &point.TotalTests, &point.PassedTests, &point.FailedTests, &point.SkippedTests); err != nil {
			return
		}
		series = append(series, point)
	}

	return series, rows.Err()
}

func (c *client) GetBuildSyncStatus(ctx context.Context, tenantID, buildID string) (status *BuildSyncStatusRecord, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("build_id", "tenant_id", "initial_backfill_completed", "total_runs_synced", "last_synced_at", "last_synced_run_id", "last_synced_run_created_at", "last_sync_error", "inserted_at", "updated_at").
		From("build_sync_status").
		Where(sq.Eq{"build_id": buildID}).
		Where(sq.Eq{"tenant_id": tenantID}).
		Limit(1)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	status = &BuildSyncStatusRecord{}
	var lastSyncedAt, lastSyncedRunCreatedAt sql.NullTime
	var lastSyncedRunID sql.NullInt64

	if err = c.databaseConnection.QueryRowContext(ctx, sqlQuery, args...).Scan(&status.BuildID, &status.TenantID, &status.InitialBackfillCompleted, &status.TotalRunsSynced, &lastSyncedAt, &lastSyncedRunID, &lastSyncedRunCreatedAt, &status.LastSyncError, &status.InsertedAt, &status.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if lastSyncedAt.Valid {
		status.LastSyncedAt = &lastSyncedAt.Time
	}
	if lastSyncedRunID.Valid {
		status.LastSyncedRunID = &lastSyncedRunID.Int64
	}
	if lastSyncedRunCreatedAt.Valid {
		status.LastSyncedRunCreatedAt = &lastSyncedRunCreatedAt.Time
	}

	return status, nil
}

// UpsertBuildSyncStatus inserts the checkpoint row for a build when absent, leaving an
// existing row untouched
func (c *client) UpsertBuildSyncStatus(ctx context.Context, status BuildSyncStatusRecord) (err error) {

	_, err = c.databaseConnection.ExecContext(ctx,
		`
		INSERT INTO
			build_sync_status
		(
			build_id,
			tenant_id,
			initial_backfill_completed,
			total_runs_synced
		)
		VALUES
		(
			$1,
			$2,
			$3,
			$4
		)
		ON CONFLICT
		(
			build_id
		)
		DO NOTHING
		`,
		status.BuildID,
		status.TenantID,
		status.InitialBackfillCompleted,
		status.TotalRunsSynced,
	)

	return
}

// UpdateBuildSyncSuccess records a successful pass, incrementing the run counter and
// clearing any previous error without touching the backfill flag
func (c *client) UpdateBuildSyncSuccess(ctx context.Context, tenantID, buildID string, runsSynced int, lastSyncedAt time.Time, lastSyncedRunID *int64, lastSyncedRunCreatedAt *time.Time) (err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Update("build_sync_status").
		Set("total_runs_synced", sq.Expr("total_runs_synced + ?", runsSynced)).
		Set("last_synced_at", lastSyncedAt).
		Set("last_sync_error", "").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"build_id": buildID}).
		Where(sq.Eq{"tenant_id": tenantID})

	if lastSyncedRunID != nil {
		query = query.Set("last_synced_run_id", *lastSyncedRunID)
	}
	if lastSyncedRunCreatedAt != nil {
		query = query.Set("last_synced_run_created_at", *lastSyncedRunCreatedAt)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	_, err = c.databaseConnection.ExecContext(ctx, sqlQuery, args...)

	return
}

// MarkInitialBackfillCompleted flips the backfill flag to true; the flag is never reverted
func (c *client) MarkInitialBackfillCompleted(ctx context.Context, tenantID, buildID string) (err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Update("build_sync_status").
		Set("initial_backfill_completed", true).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"build_id": buildID}).
		Where(sq.Eq{"tenant_id": tenantID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	_, err = c.databaseConnection.ExecContext(ctx, sqlQuery, args...)

	return
}

// UpdateBuildSyncError records a failed pass, leaving the counters and last synced run
// fields from the previous successful pass untouched
func (c *client) UpdateBuildSyncError(ctx context.Context, tenantID, buildID, message string) (err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Update("build_sync_status").
		Set("last_sync_error", message).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"build_id": buildID}).
		Where(sq.Eq{"tenant_id": tenantID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	_, err = c.databaseConnection.ExecContext(ctx, sqlQuery, args...)

	return
}

func (c *client) GetAccessToken(ctx context.Context, tenantID, accessTokenID string) (token *AccessTokenRecord, err error) {

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("id", "tenant_id", "name", "encrypted_token", "inserted_at").
		From("access_tokens").
		Where(sq.Eq{"id": accessTokenID}).
		Where(sq.Eq{"tenant_id": tenantID}).
		Limit(1)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	token = &AccessTokenRecord{}
	if err = c.databaseConnection.QueryRowContext(ctx, sqlQuery, args...).Scan(&token.ID, &token.TenantID, &token.Name, &token.EncryptedToken, &token.InsertedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccessTokenNotFound
		}
		return nil, err
	}

	return token, nil
}

var workflowRunColumns = []string{"id", "tenant_id", "build_id", "github_run_id", "name", "status", "conclusion", "url", "head_branch", "event", "duration_seconds", "commit_sha", "commit_message", "commit_author", "commit_date", "run_created_at", "run_updated_at", "synced_at"}

func (c *client) queryWorkflowRuns(ctx context.Context, query sq.SelectBuilder) (records []WorkflowRunRecord, err error) {

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return
	}

	rows, err := c.databaseConnection.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var record WorkflowRunRecord
		var commitDate, runUpdatedAt sql.NullTime

		if err = rows.Scan(&record.ID, &record.TenantID, &record.BuildID, &record.GithubRunID, &record.Name, &record.Status, &record.Conclusion, &record.URL, &record.HeadBranch, &record.Event, &record.DurationSeconds, &record.CommitSha, &record.CommitMessage, &record.CommitAuthor, &commitDate, &record.RunCreatedAt, &runUpdatedAt, &record.SyncedAt); err != nil {
			return
		}

		record.CommitDate = commitDate.Time
		record.RunUpdatedAt = runUpdatedAt.Time

		records = append(records, record)
	}

	return records, rows.Err()
}

func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
