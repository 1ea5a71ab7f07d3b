package contracts

import "time"

// RecentRun is the trimmed view of a persisted workflow run shown on the dashboard
type RecentRun struct {
	GithubRunID int64     `json:"githubRunId"`
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	HeadBranch  string    `json:"headBranch,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DayStats tallies run outcomes for a single calendar day (UTC)
type DayStats struct {
	Date         time.Time `json:"date"`
	SuccessCount int       `json:"successCount"`
	FailureCount int       `json:"failureCount"`
}

// MonthStats tallies run outcomes for a single calendar month (UTC)
type MonthStats struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
	TotalCount   int `json:"totalCount"`
}

// MonthCommits is the number of commits pushed to the repository in a single calendar month
type MonthCommits struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	CommitCount int `json:"commitCount"`
}

// TestStats are the aggregate counts of the most recently parsed test report for a build
type TestStats struct {
	TotalTests   int       `json:"totalTests"`
	PassedTests  int       `json:"passedTests"`
	FailedTests  int       `json:"failedTests"`
	SkippedTests int       `json:"skippedTests"`
	ParsedAt     time.Time `json:"parsedAt"`
}

// TestTrendPoint is a single point of the chronological test result series for a build
type TestTrendPoint struct {
	GithubRunID  int64     `json:"githubRunId"`
	RunCreatedAt time.Time `json:"runCreatedAt"`
	TotalTests   int       `json:"totalTests"`
	PassedTests  int       `json:"passedTests"`
	FailedTests  int       `json:"failedTests"`
	SkippedTests int       `json:"skippedTests"`
}

// BuildStats is the point-in-time health snapshot of a build over the trailing 7 days,
// combining database aggregation with optionally cached repository metadata
type BuildStats struct {
	TotalExecutions      int         `json:"totalExecutions"`
	SuccessfulExecutions int         `json:"successfulExecutions"`
	FailedExecutions     int         `json:"failedExecutions"`
	HealthPercentage     int         `json:"healthPercentage"`
	RecentRuns           []RecentRun `json:"recentRuns"`
	Last7DaysSuccesses   []DayStats  `json:"last7DaysSuccesses"`
	TestStats            *TestStats  `json:"testStats"`

	LastTag               string  `json:"lastTag,omitempty"`
	CommitsLast7Days      int     `json:"commitsLast7Days,omitempty"`
	ContributorsLast7Days int     `json:"contributorsLast7Days,omitempty"`
	TotalCommits          int     `json:"totalCommits,omitempty"`
	TotalContributors     int     `json:"totalContributors,omitempty"`
	LastCommit            *Commit `json:"lastCommit,omitempty"`
}

// BuildDetailsStats extends BuildStats with the series rendered on the build details page
type BuildDetailsStats struct {
	BuildStats

	MonthlyStats   []MonthStats     `json:"monthlyStats"`
	MonthlyCommits []MonthCommits   `json:"monthlyCommits"`
	TestTrend      []TestTrendPoint `json:"testTrend"`
	Contributors   []Contributor    `json:"contributors"`
}

// SyncResult reports what a single sync pass did
type SyncResult struct {
	NewRunsSynced     int       `json:"newRunsSynced"`
	TestResultsParsed int       `json:"testResultsParsed"`
	LastSyncedAt      time.Time `json:"lastSyncedAt"`
}
