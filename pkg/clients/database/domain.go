package database

import (
	"time"

	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// WorkflowRunRecord is the persisted projection of a workflow run, scoped to a tenant and
// build and enriched with commit metadata and sync bookkeeping; the (build_id,
// github_run_id) pair is the upsert key
type WorkflowRunRecord struct {
	ID              string
	TenantID        string
	BuildID         string
	GithubRunID     int64
	Name            string
	Status          contracts.Status
	Conclusion      string
	URL             string
	HeadBranch      string
	Event           string
	DurationSeconds int
	CommitSha       string
	CommitMessage   string
	CommitAuthor    string
	CommitDate      time.Time
	RunCreatedAt    time.Time
	RunUpdatedAt    time.Time
	SyncedAt        time.Time
}

// TestResultRecord holds the parsed junit report counts for a single workflow run; it is
// written once the first time an artifact parses successfully and never overwritten
type TestResultRecord struct {
	ID           string
	TenantID     string
	BuildID      string
	GithubRunID  int64
	TotalTests   int
	PassedTests  int
	FailedTests  int
	SkippedTests int
	TestCases    string
	ArtifactName string
	ArtifactURL  string
	ParsedAt     time.Time
}

// BuildSyncStatusRecord is the per-build sync checkpoint enabling resumable, idempotent
// syncs; created lazily on the first sync call and updated after every attempt
type BuildSyncStatusRecord struct {
	BuildID                  string
	TenantID                 string
	InitialBackfillCompleted bool
	TotalRunsSynced          int
	LastSyncedAt             *time.Time
	LastSyncedRunID          *int64
	LastSyncedRunCreatedAt   *time.Time
	LastSyncError            string
	InsertedAt               time.Time
	UpdatedAt                time.Time
}

// AccessTokenRecord is a managed credential; the token is stored encrypted at rest and
// decrypted only at the point of use
type AccessTokenRecord struct {
	ID             string
	TenantID       string
	Name           string
	EncryptedToken string
	InsertedAt     time.Time
}

// ToRecentRun maps a persisted run to its dashboard view
func (r *WorkflowRunRecord) ToRecentRun() contracts.RecentRun {
	return contracts.RecentRun{
		GithubRunID: r.GithubRunID,
		Name:        r.Name,
		Status:      r.Status,
		HeadBranch:  r.HeadBranch,
		CreatedAt:   r.RunCreatedAt,
		UpdatedAt:   r.RunUpdatedAt,
	}
}
