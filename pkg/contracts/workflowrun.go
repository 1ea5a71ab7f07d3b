package contracts

import "time"

// WorkflowRun is a single workflow execution as returned by the Github api; it is
// ephemeral and fetched fresh on every sync, the persisted projection lives in the
// database client as WorkflowRunRecord
type WorkflowRun struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Status          Status    `json:"status"`
	Conclusion      string    `json:"conclusion,omitempty"`
	URL             string    `json:"url,omitempty"`
	HeadBranch      string    `json:"headBranch,omitempty"`
	HeadSha         string    `json:"headSha,omitempty"`
	Event           string    `json:"event,omitempty"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	CommitMessage   string    `json:"commitMessage,omitempty"`
	CommitAuthor    string    `json:"commitAuthor,omitempty"`
	CommitDate      time.Time `json:"commitDate,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Artifact is a file uploaded by a workflow run
type Artifact struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
	URL       string `json:"url,omitempty"`
	Expired   bool   `json:"expired,omitempty"`
}

// Commit represents the head commit of a repository
type Commit struct {
	Sha     string    `json:"sha"`
	Message string    `json:"message,omitempty"`
	Author  string    `json:"author,omitempty"`
	Date    time.Time `json:"date,omitempty"`
	URL     string    `json:"url,omitempty"`
}

// Contributor is a repository contributor with their commit volume
type Contributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	Contributions int    `json:"contributions"`
}
