package githubapi

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/rs/zerolog/log"
	"github.com/sethgrid/pester"
)

var (
	// ErrAuthenticationFailed is returned when the Github api rejects the credential; callers
	// surface a credential renewal prompt instead of retrying blindly
	ErrAuthenticationFailed = errors.New("the github api rejected the credential")

	// ErrNotFound is returned when the requested repository or resource does not exist
	ErrNotFound = errors.New("the requested github resource can't be found")

	// ErrRequestFailed is returned for any other upstream failure
	ErrRequestFailed = errors.New("the github api request failed")
)

const (
	pageSize    = 100
	maxRunPages = 10
)

// Client is the interface for communicating with the github api
//
//go:generate mockgen -package=githubapi -destination ./mock.go -source=client.go
type Client interface {
	GetWorkflowRuns(ctx context.Context, token, repoOwner, repoName string) (runs []contracts.WorkflowRun, err error)
	GetTags(ctx context.Context, token, repoOwner, repoName string) (tags []string, err error)
	GetArtifacts(ctx context.Context, token, repoOwner, repoName string, runID int64) (artifacts []contracts.Artifact, err error)
	DownloadArtifact(ctx context.Context, token, repoOwner, repoName string, artifactID int64) (content []byte, err error)
	GetLastCommit(ctx context.Context, token, repoOwner, repoName string) (commit *contracts.Commit, err error)
	GetCommitCount(ctx context.Context, token, repoOwner, repoName string, since *time.Time) (count int, err error)
	GetContributorCount(ctx context.Context, token, repoOwner, repoName string, since time.Time) (count int, err error)
	GetTotalContributorCount(ctx context.Context, token, repoOwner, repoName string) (count int, err error)
	GetContributors(ctx context.Context, token, repoOwner, repoName string, limit int) (contributors []contracts.Contributor, err error)
	GetCommitsBetween(ctx context.Context, token, repoOwner, repoName string, from, to time.Time) (count int, err error)
}

// NewClient creates a githubapi.Client to communicate with the Github api
func NewClient(config *api.APIConfig) Client {
	baseURL := "https://api.github.com"
	if config != nil && config.Integrations != nil && config.Integrations.Github != nil && config.Integrations.Github.APIBaseURL != "" {
		baseURL = strings.TrimSuffix(config.Integrations.Github.APIBaseURL, "/")
	}

	return &client{
		config:  config,
		baseURL: baseURL,
	}
}

type client struct {
	config  *api.APIConfig
	baseURL string
}

// GetWorkflowRuns lists all workflow runs of a repository, walking pages newest first up
// to maxRunPages pages
func (c *client) GetWorkflowRuns(ctx context.Context, token, repoOwner, repoName string) (runs []contracts.WorkflowRun, err error) {

	for page := 1; page <= maxRunPages; page++ {

		requestURL := fmt.Sprintf("%v/repos/%v/%v/actions/runs?per_page=%v&page=%v", c.baseURL, repoOwner, repoName, pageSize, page)

		_, body, _, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
		if err != nil {
			return runs, err
		}

		var response WorkflowRunsResponse
		if err = json.Unmarshal(body, &response); err != nil {
			return runs, fmt.Errorf("%w: deserializing workflow runs response failed: %v", ErrRequestFailed, err)
		}

		for _, event := range response.WorkflowRuns {
			runs = append(runs, toWorkflowRun(event))
		}

		if len(response.WorkflowRuns) < pageSize {
			break
		}
	}

	return runs, nil
}

// GetTags lists all tag names of a repository
func (c *client) GetTags(ctx context.Context, token, repoOwner, repoName string) (tags []string, err error) {

	for page := 1; ; page++ {

		requestURL := fmt.Sprintf("%v/repos/%v/%v/tags?per_page=%v&page=%v", c.baseURL, repoOwner, repoName, pageSize, page)

		_, body, _, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
		if err != nil {
			return tags, err
		}

		var pageTags []Tag
		if err = json.Unmarshal(body, &pageTags); err != nil {
			return tags, fmt.Errorf("%w: deserializing tags response failed: %v", ErrRequestFailed, err)
		}

		for _, tag := range pageTags {
			tags = append(tags, tag.Name)
		}

		if len(pageTags) < pageSize {
			break
		}
	}

	return tags, nil
}

// GetArtifacts lists the artifacts uploaded by a workflow run
func (c *client) GetArtifacts(ctx context.Context, token, repoOwner, repoName string, runID int64) (artifacts []contracts.Artifact, err error) {

	requestURL := fmt.Sprintf("%v/repos/%v/%v/actions/runs/%v/artifacts", c.baseURL, repoOwner, repoName, runID)

	_, body, _, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
	if err != nil {
		return
	}

	var response ArtifactsResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return artifacts, fmt.Errorf("%w: deserializing artifacts response failed: %v", ErrRequestFailed, err)
	}

	for _, item := range response.Artifacts {
		artifacts = append(artifacts, contracts.Artifact{
			ID:        item.ID,
			Name:      item.Name,
			SizeBytes: item.SizeInBytes,
			URL:       item.ArchiveDownloadURL,
			Expired:   item.Expired,
		})
	}

	return artifacts, nil
}

// DownloadArtifact downloads an artifact zip archive and returns the content of the first
// xml file inside it
func (c *client) DownloadArtifact(ctx context.Context, token, repoOwner, repoName string, artifactID int64) (content []byte, err error) {

	requestURL := fmt.Sprintf("%v/repos/%v/%v/actions/artifacts/%v/zip", c.baseURL, repoOwner, repoName, artifactID)

	_, body, _, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
	if err != nil {
		return
	}

	reader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return content, fmt.Errorf("%w: artifact %v is not a valid zip archive: %v", ErrRequestFailed, artifactID, err)
	}

	for _, file := range reader.File {
		if !strings.HasSuffix(file.Name, ".xml") {
			continue
		}

		fileReader, err := file.Open()
		if err != nil {
			return content, fmt.Errorf("%w: opening %v in artifact %v failed: %v", ErrRequestFailed, file.Name, artifactID, err)
		}

		content, err = io.ReadAll(fileReader)
		fileReader.Close()
		if err != nil {
			return content, fmt.Errorf("%w: reading %v in artifact %v failed: %v", ErrRequestFailed, file.Name, artifactID, err)
		}

		return content, nil
	}

	return content, fmt.Errorf("%w: artifact %v contains no xml file", ErrNotFound, artifactID)
}

// GetLastCommit returns the head commit of the default branch, or nil when the repository
// has no commits yet
func (c *client) GetLastCommit(ctx context.Context, token, repoOwner, repoName string) (commit *contracts.Commit, err error) {

	requestURL := fmt.Sprintf("%v/repos/%v/%v/commits?per_page=1", c.baseURL, repoOwner, repoName)

	_, body, _, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return
	}

	var commits []CommitItem
	if err = json.Unmarshal(body, &commits); err != nil {
		return commit, fmt.Errorf("%w: deserializing commits response failed: %v", ErrRequestFailed, err)
	}

	if len(commits) == 0 {
		return nil, nil
	}

	item := commits[0]
	commit = &contracts.Commit{
		Sha:     item.Sha,
		Message: item.Commit.Message,
		Author:  item.Commit.Author.Name,
		Date:    item.Commit.Author.Date,
		URL:     item.HTMLURL,
	}

	return commit, nil
}

// GetCommitCount counts the commits of the default branch, optionally bounded to commits
// after since; it reads the total from the rel="last" pagination link instead of walking
// all pages
func (c *client) GetCommitCount(ctx context.Context, token, repoOwner, repoName string, since *time.Time) (count int, err error) {

	requestURL := fmt.Sprintf("%v/repos/%v/%v/commits?per_page=1", c.baseURL, repoOwner, repoName)
	if since != nil {
		requestURL += "&since=" + url.QueryEscape(since.Format(time.RFC3339))
	}

	return c.countViaPaginationLink(ctx, requestURL, token)
}

// GetCommitsBetween counts the commits pushed between from and to
func (c *client) GetCommitsBetween(ctx context.Context, token, repoOwner, repoName string, from, to time.Time) (count int, err error) {

	requestURL := fmt.Sprintf("%v/repos/%v/%v/commits?per_page=1&since=%v&until=%v", c.baseURL, repoOwner, repoName,
		url.QueryEscape(from.Format(time.RFC3339)), url.QueryEscape(to.Format(time.RFC3339)))

	return c.countViaPaginationLink(ctx, requestURL, token)
}

// GetContributorCount counts the distinct commit authors since the passed moment
func (c *client) GetContributorCount(ctx context.Context, token, repoOwner, repoName string, since time.Time) (count int, err error) {

	authors := map[string]struct{}{}

	for page := 1; ; page++ {

		requestURL := fmt.Sprintf("%v/repos/%v/%v/commits?per_page=%v&page=%v&since=%v", c.baseURL, repoOwner, repoName,
			pageSize, page, url.QueryEscape(since.Format(time.RFC3339)))

		_, body, _, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
		if err != nil {
			return count, err
		}

		var commits []CommitItem
		if err = json.Unmarshal(body, &commits); err != nil {
			return count, fmt.Errorf("%w: deserializing commits response failed: %v", ErrRequestFailed, err)
		}

		for _, item := range commits {
			if item.Author != nil && item.Author.Login != "" {
				authors[item.Author.Login] = struct{}{}
				continue
			}
			if item.Commit.Author.Email != "" {
				authors[item.Commit.Author.Email] = struct{}{}
			}
		}

		if len(commits) < pageSize {
			break
		}
	}

	return len(authors), nil
}

// GetTotalContributorCount counts all contributors of a repository via the rel="last"
// pagination link
func (c *client) GetTotalContributorCount(ctx context.Context, token, repoOwner, repoName string) (count int, err error) {

	requestURL := fmt.Sprintf("%v/repos/%v/%v/contributors?per_page=1", c.baseURL, repoOwner, repoName)

	return c.countViaPaginationLink(ctx, requestURL, token)
}

// GetContributors lists up to limit contributors ordered by commit volume
func (c *client) GetContributors(ctx context.Context, token, repoOwner, repoName string, limit int) (contributors []contracts.Contributor, err error) {

	if limit <= 0 || limit > pageSize {
		limit = pageSize
	}

	requestURL := fmt.Sprintf("%v/repos/%v/%v/contributors?per_page=%v", c.baseURL, repoOwner, repoName, limit)

	_, body, _, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
	if err != nil {
		return
	}

	var items []ContributorItem
	if err = json.Unmarshal(body, &items); err != nil {
		return contributors, fmt.Errorf("%w: deserializing contributors response failed: %v", ErrRequestFailed, err)
	}

	for _, item := range items {
		contributors = append(contributors, contracts.Contributor{
			Login:         item.Login,
			AvatarURL:     item.AvatarURL,
			Contributions: item.Contributions,
		})
	}

	return contributors, nil
}

var lastPageRegex = regexp.MustCompile(`[?&]page=(\d+)[^>]*>;\s*rel="last"`)

// countViaPaginationLink requests a single item and derives the total count from the
// rel="last" link header, falling back to the number of returned items when the result
// fits on one page
func (c *client) countViaPaginationLink(ctx context.Context, requestURL, token string) (count int, err error) {

	_, body, headers, err := c.callGithubAPI(ctx, http.MethodGet, requestURL, token)
	if err != nil {
		return
	}

	if matches := lastPageRegex.FindStringSubmatch(headers.Get("Link")); len(matches) == 2 {
		if count, err = strconv.Atoi(matches[1]); err == nil {
			return count, nil
		}
	}

	var items []json.RawMessage
	if err = json.Unmarshal(body, &items); err != nil {
		return count, fmt.Errorf("%w: deserializing count response failed: %v", ErrRequestFailed, err)
	}

	return len(items), nil
}

func (c *client) callGithubAPI(ctx context.Context, method, requestURL, token string) (statusCode int, body []byte, headers http.Header, err error) {

	// create client, in order to add headers
	client := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	client.MaxRetries = 3
	client.Backoff = pester.ExponentialJitterBackoff
	client.KeepLog = true
	client.Timeout = time.Second * 10

	request, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return
	}

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// add tracing context
		request = request.WithContext(opentracing.ContextWithSpan(request.Context(), span))

		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Add("Authorization", fmt.Sprintf("Bearer %v", token))
	request.Header.Add("Accept", "application/vnd.github+json")
	request.Header.Add("X-GitHub-Api-Version", "2022-11-28")

	// perform actual request
	response, err := client.Do(request)
	if err != nil {
		return statusCode, body, headers, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	defer response.Body.Close()
	if ht != nil {
		ht.Finish()
	}

	statusCode = response.StatusCode
	headers = response.Header

	body, err = io.ReadAll(response.Body)
	if err != nil {
		return statusCode, body, headers, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		log.Warn().Str("url", requestURL).Int("statusCode", statusCode).Msg("Github api rejected the credential")
		return statusCode, body, headers, ErrAuthenticationFailed
	case statusCode == http.StatusNotFound:
		return statusCode, body, headers, ErrNotFound
	case statusCode >= 400:
		return statusCode, body, headers, fmt.Errorf("%w: %v responded with status code %v", ErrRequestFailed, requestURL, statusCode)
	}

	return statusCode, body, headers, nil
}

func toWorkflowRun(event WorkflowRunEvent) contracts.WorkflowRun {

	run := contracts.WorkflowRun{
		ID:            event.ID,
		Name:          event.Name,
		Status:        contracts.StatusFromGithub(event.Status, event.Conclusion),
		Conclusion:    event.Conclusion,
		URL:           event.HTMLURL,
		HeadBranch:    event.HeadBranch,
		HeadSha:       event.HeadSha,
		Event:         event.Event,
		CommitMessage: event.HeadCommit.Message,
		CommitAuthor:  event.HeadCommit.Author.Name,
		CommitDate:    event.HeadCommit.Timestamp,
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,
	}

	start := event.RunStartedAt
	if start.IsZero() {
		start = event.CreatedAt
	}
	if !event.UpdatedAt.IsZero() && event.UpdatedAt.After(start) {
		run.DurationSeconds = int(event.UpdatedAt.Sub(start).Seconds())
	}

	return run
}
