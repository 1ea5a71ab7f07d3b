package contracts

// Status represents the outcome of a workflow run
type Status string

const (
	StatusSuccess    Status = "success"
	StatusFailure    Status = "failure"
	StatusInProgress Status = "in_progress"
	StatusQueued     Status = "queued"
	StatusCancelled  Status = "cancelled"
	StatusSkipped    Status = "skipped"
	StatusUnknown    Status = "unknown"
)

func (s Status) String() string {
	return string(s)
}

// IsCompleted returns true when the run has finished and its artifacts can be inspected
func (s Status) IsCompleted() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusCancelled, StatusSkipped:
		return true
	}
	return false
}

// StatusFromGithub maps the status and conclusion fields of a workflow run as returned
// by the Github api onto a single Status value
func StatusFromGithub(status, conclusion string) Status {
	switch status {
	case "queued", "waiting", "pending", "requested":
		return StatusQueued
	case "in_progress":
		return StatusInProgress
	case "completed":
		switch conclusion {
		case "success":
			return StatusSuccess
		case "failure", "timed_out", "startup_failure":
			return StatusFailure
		case "cancelled":
			return StatusCancelled
		case "skipped", "neutral":
			return StatusSkipped
		}
	}

	return StatusUnknown
}
