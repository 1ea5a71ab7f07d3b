package contracts

import "time"

// SelectorType indicates what property of a workflow run a selector filters on
type SelectorType string

const (
	SelectorTypeBranch   SelectorType = "branch"
	SelectorTypeTag      SelectorType = "tag"
	SelectorTypeWorkflow SelectorType = "workflow"
)

// Selector filters workflow runs for a build by branch, tag or workflow name; a build
// with multiple selectors includes a run when any selector matches
type Selector struct {
	Type    SelectorType `yaml:"type" json:"type"`
	Pattern string       `yaml:"pattern" json:"pattern"`
}

// Build represents a tenant's monitored Github repository, including run selectors,
// the credential used for api calls and cached repository metadata refreshed by the
// stats aggregator whenever the repository moved to a new head commit
type Build struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenantId"`
	Name          string     `json:"name"`
	RepoOwner     string     `json:"repoOwner"`
	RepoName      string     `json:"repoName"`
	InlineToken   string     `json:"-"`
	AccessTokenID string     `json:"accessTokenId,omitempty"`
	Selectors     []Selector `json:"selectors,omitempty"`

	LastAnalyzedCommitSha       string   `json:"lastAnalyzedCommitSha,omitempty"`
	Tags                        []string `json:"tags,omitempty"`
	TotalCommits                int      `json:"totalCommits,omitempty"`
	TotalContributors           int      `json:"totalContributors,omitempty"`
	CachedCommitsLast7Days      int      `json:"cachedCommitsLast7Days,omitempty"`
	CachedContributorsLast7Days int      `json:"cachedContributorsLast7Days,omitempty"`

	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FullRepoPath returns the owner/name path of the monitored repository
func (b *Build) FullRepoPath() string {
	return b.RepoOwner + "/" + b.RepoName
}

// HasTagSelector returns true when any selector requires the repository's tag names
// in order to be evaluated
func (b *Build) HasTagSelector() bool {
	for _, s := range b.Selectors {
		if s.Type == SelectorTypeTag {
			return true
		}
	}
	return false
}

// MetadataCache groups the repository metadata cached on a build record together with
// the head commit sha the values were computed for
type MetadataCache struct {
	LastAnalyzedCommitSha       string
	Tags                        []string
	TotalCommits                int
	TotalContributors           int
	CachedCommitsLast7Days      int
	CachedContributorsLast7Days int
}
