package githubapi

import "time"

// WorkflowRunsResponse is the response envelope of the list workflow runs api
type WorkflowRunsResponse struct {
	TotalCount   int                `json:"total_count"`
	WorkflowRuns []WorkflowRunEvent `json:"workflow_runs"`
}

// WorkflowRunEvent is a single workflow run as serialized by the Github api
type WorkflowRunEvent struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	HeadBranch   string     `json:"head_branch"`
	HeadSha      string     `json:"head_sha"`
	Event        string     `json:"event"`
	Status       string     `json:"status"`
	Conclusion   string     `json:"conclusion"`
	HTMLURL      string     `json:"html_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	RunStartedAt time.Time  `json:"run_started_at"`
	HeadCommit   HeadCommit `json:"head_commit"`
}

// HeadCommit is the commit a workflow run was triggered for
type HeadCommit struct {
	ID        string       `json:"id"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Author    CommitAuthor `json:"author"`
}

// CommitAuthor is the author of a commit
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Login string `json:"login"`
}

// Tag is a repository tag as serialized by the Github api
type Tag struct {
	Name string `json:"name"`
}

// ArtifactsResponse is the response envelope of the list workflow run artifacts api
type ArtifactsResponse struct {
	TotalCount int            `json:"total_count"`
	Artifacts  []ArtifactItem `json:"artifacts"`
}

// ArtifactItem is a single workflow run artifact as serialized by the Github api
type ArtifactItem struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	SizeInBytes        int64  `json:"size_in_bytes"`
	ArchiveDownloadURL string `json:"archive_download_url"`
	Expired            bool   `json:"expired"`
}

// CommitItem is a single commit as serialized by the Github api
type CommitItem struct {
	Sha     string        `json:"sha"`
	HTMLURL string        `json:"html_url"`
	Commit  CommitDetails `json:"commit"`
	Author  *UserAccount  `json:"author"`
}

// CommitDetails holds the message and author of a commit
type CommitDetails struct {
	Message string     `json:"message"`
	Author  CommitMeta `json:"author"`
}

// CommitMeta holds the name and date of a commit author or committer
type CommitMeta struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// UserAccount is a Github user account
type UserAccount struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// ContributorItem is a repository contributor as serialized by the Github api
type ContributorItem struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
}
