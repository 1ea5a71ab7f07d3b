package buildsync

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	crypt "github.com/estafette/estafette-ci-crypt"
	"github.com/jinzhu/copier"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/clients/githubapi"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/pipesight/pipesight-api/pkg/junitxml"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoCredential is returned when a build carries neither an inline token nor a
	// reference to a managed access token
	ErrNoCredential = errors.New("the build has no credential to call the github api with")
)

const (
	// maxTestResultBackfill caps how many runs per sync pass are eligible for artifact
	// fetch and parse, bounding github api load for large backlogs
	maxTestResultBackfill = 50

	// testReportNameMarker selects the artifact holding the junit report
	testReportNameMarker = "test-results"

	// unknownCommitSha is persisted when the run payload carries no head sha
	unknownCommitSha = "unknown"

	// artifactFetchConcurrency bounds the artifact backfill fan-out
	artifactFetchConcurrency = 5
)

// Service syncs a build's workflow run history and test results from the Github api
// into the database
//
//go:generate mockgen -package=buildsync -destination ./mock.go -source=service.go
type Service interface {
	SyncBuildHistory(ctx context.Context, build contracts.Build) (result contracts.SyncResult, err error)
}

// NewService returns a buildsync.Service
func NewService(config *api.APIConfig, githubapiClient githubapi.Client, databaseClient database.Client, secretHelper crypt.SecretHelper) Service {
	return &service{
		config:          config,
		githubapiClient: githubapiClient,
		databaseClient:  databaseClient,
		secretHelper:    secretHelper,
	}
}

type service struct {
	config          *api.APIConfig
	githubapiClient githubapi.Client
	databaseClient  database.Client
	secretHelper    crypt.SecretHelper
}

func (s *service) SyncBuildHistory(ctx context.Context, build contracts.Build) (result contracts.SyncResult, err error) {

	// create the checkpoint lazily so a failing first sync still has a row to record
	// its error on
	status, err := s.databaseClient.GetBuildSyncStatus(ctx, build.TenantID, build.ID)
	if err != nil {
		return
	}
	if status == nil {
		if err = s.databaseClient.UpsertBuildSyncStatus(ctx, database.BuildSyncStatusRecord{
			BuildID:  build.ID,
			TenantID: build.TenantID,
		}); err != nil {
			return
		}
	}

	// resolve the credential after the checkpoint exists so a missing or undecryptable
	// token surfaces on the checkpoint like any other sync failure
	token, err := s.resolveCredential(ctx, build)
	if err == nil {
		result, err = s.sync(ctx, build, token)
	}
	if err != nil {
		// record the failure without clobbering previously synced checkpoint fields,
		// then hand the original error back to the caller for retry scheduling
		if updateErr := s.databaseClient.UpdateBuildSyncError(ctx, build.TenantID, build.ID, err.Error()); updateErr != nil {
			log.Warn().Err(updateErr).Msgf("Failed recording sync error for build %v", build.ID)
		}
		return contracts.SyncResult{}, err
	}

	return result, nil
}

func (s *service) sync(ctx context.Context, build contracts.Build, token string) (result contracts.SyncResult, err error) {

	// tag names are only needed when a tag selector has to be evaluated
	var tagNames []string
	if build.HasTagSelector() {
		tagNames, err = s.githubapiClient.GetTags(ctx, token, build.RepoOwner, build.RepoName)
		if err != nil {
			return
		}
	}

	runs, err := s.githubapiClient.GetWorkflowRuns(ctx, token, build.RepoOwner, build.RepoName)
	if err != nil {
		return
	}

	matchedRuns := []contracts.WorkflowRun{}
	for _, run := range runs {
		if runMatchesSelectors(run, build.Selectors, tagNames) {
			matchedRuns = append(matchedRuns, run)
		}
	}

	existingRunIDs, err := s.databaseClient.GetWorkflowRunIDs(ctx, build.TenantID, build.ID)
	if err != nil {
		return
	}

	now := time.Now().UTC()

	newRuns := 0
	records := make([]database.WorkflowRunRecord, 0, len(matchedRuns))
	for _, run := range matchedRuns {
		if _, known := existingRunIDs[run.ID]; !known {
			newRuns++
		}
		records = append(records, s.mapRunToRecord(build, run, now))
	}

	upserted, err := s.databaseClient.UpsertWorkflowRuns(ctx, records)
	if err != nil {
		return
	}

	log.Debug().Msgf("Upserted %v runs for build %v (%v previously unseen)", upserted, build.FullRepoPath(), newRuns)

	testResultsParsed := s.backfillTestResults(ctx, build, token, records)

	var lastSyncedRunID *int64
	var lastSyncedRunCreatedAt *time.Time
	if mostRecent := mostRecentRecord(records); mostRecent != nil {
		lastSyncedRunID = &mostRecent.GithubRunID
		lastSyncedRunCreatedAt = &mostRecent.RunCreatedAt
	}

	if err = s.databaseClient.UpdateBuildSyncSuccess(ctx, build.TenantID, build.ID, upserted, now, lastSyncedRunID, lastSyncedRunCreatedAt); err != nil {
		return
	}
	if err = s.databaseClient.MarkInitialBackfillCompleted(ctx, build.TenantID, build.ID); err != nil {
		return
	}

	return contracts.SyncResult{
		NewRunsSynced:     upserted,
		TestResultsParsed: testResultsParsed,
		LastSyncedAt:      now,
	}, nil
}

// backfillTestResults fetches and parses junit artifacts for the most recent completed
// runs of this batch; every per-run failure is swallowed so one broken artifact never
// aborts the batch
func (s *service) backfillTestResults(ctx context.Context, build contracts.Build, token string, records []database.WorkflowRunRecord) (testResultsParsed int) {

	eligible := make([]database.WorkflowRunRecord, len(records))
	copy(eligible, records)
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].RunCreatedAt.After(eligible[j].RunCreatedAt)
	})
	if len(eligible) > maxTestResultBackfill {
		eligible = eligible[:maxTestResultBackfill]
	}

	var parsed int
	var parsedMutex sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(artifactFetchConcurrency)

	for _, record := range eligible {
		record := record

		if !record.Status.IsCompleted() {
			continue
		}

		g.Go(func() error {
			if s.backfillTestResultForRun(ctx, build, token, record) {
				parsedMutex.Lock()
				parsed++
				parsedMutex.Unlock()
			}
			return nil
		})
	}

	// workers never return an error, per-run failures are soft
	_ = g.Wait()

	return parsed
}

func (s *service) backfillTestResultForRun(ctx context.Context, build contracts.Build, token string, record database.WorkflowRunRecord) (parsed bool) {

	exists, err := s.databaseClient.TestResultExists(ctx, build.TenantID, build.ID, record.GithubRunID)
	if err != nil {
		log.Warn().Err(err).Msgf("Failed checking test result existence for run %v of build %v", record.GithubRunID, build.FullRepoPath())
		return false
	}
	if exists {
		return false
	}

	artifacts, err := s.githubapiClient.GetArtifacts(ctx, token, build.RepoOwner, build.RepoName, record.GithubRunID)
	if err != nil {
		log.Warn().Err(err).Msgf("Failed listing artifacts for run %v of build %v", record.GithubRunID, build.FullRepoPath())
		return false
	}

	artifact := selectTestReportArtifact(artifacts)
	if artifact == nil {
		return false
	}

	content, err := s.githubapiClient.DownloadArtifact(ctx, token, build.RepoOwner, build.RepoName, artifact.ID)
	if err != nil {
		log.Warn().Err(err).Msgf("Failed downloading artifact %v for run %v of build %v", artifact.Name, record.GithubRunID, build.FullRepoPath())
		return false
	}

	summary, err := junitxml.Parse(content)
	if err != nil {
		log.Warn().Err(err).Msgf("Failed parsing artifact %v for run %v of build %v", artifact.Name, record.GithubRunID, build.FullRepoPath())
		return false
	}

	testCases := ""
	if len(summary.Cases) > 0 {
		if testCasesData, marshalErr := json.Marshal(summary.Cases); marshalErr == nil {
			testCases = string(testCasesData)
		}
	}

	err = s.databaseClient.InsertTestResult(ctx, database.TestResultRecord{
		TenantID:     build.TenantID,
		BuildID:      build.ID,
		GithubRunID:  record.GithubRunID,
		TotalTests:   summary.TotalTests,
		PassedTests:  summary.PassedTests,
		FailedTests:  summary.FailedTests,
		SkippedTests: summary.SkippedTests,
		TestCases:    testCases,
		ArtifactName: artifact.Name,
		ArtifactURL:  artifact.URL,
		ParsedAt:     time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Msgf("Failed storing test result for run %v of build %v", record.GithubRunID, build.FullRepoPath())
		return false
	}

	return true
}

func (s *service) mapRunToRecord(build contracts.Build, run contracts.WorkflowRun, syncedAt time.Time) (record database.WorkflowRunRecord) {

	// copies the fields both shapes share by name; mismatched types like the run id
	// are skipped and set explicitly below
	_ = copier.Copy(&record, &run)

	record.TenantID = build.TenantID
	record.BuildID = build.ID
	record.GithubRunID = run.ID
	record.CommitSha = run.HeadSha
	if record.CommitSha == "" {
		record.CommitSha = unknownCommitSha
	}
	record.RunCreatedAt = run.CreatedAt
	record.RunUpdatedAt = run.UpdatedAt
	record.SyncedAt = syncedAt

	return record
}

func (s *service) resolveCredential(ctx context.Context, build contracts.Build) (token string, err error) {

	if build.InlineToken != "" {
		return build.InlineToken, nil
	}

	if build.AccessTokenID == "" {
		return "", ErrNoCredential
	}

	accessToken, err := s.databaseClient.GetAccessToken(ctx, build.TenantID, build.AccessTokenID)
	if err != nil {
		return
	}

	token, _, err = s.secretHelper.DecryptEnvelope(accessToken.EncryptedToken, "")
	if err != nil {
		return "", err
	}

	return token, nil
}

func selectTestReportArtifact(artifacts []contracts.Artifact) *contracts.Artifact {
	for i, artifact := range artifacts {
		if artifact.Expired {
			continue
		}
		if strings.Contains(strings.ToLower(artifact.Name), testReportNameMarker) {
			return &artifacts[i]
		}
	}
	return nil
}

func mostRecentRecord(records []database.WorkflowRunRecord) *database.WorkflowRunRecord {
	var mostRecent *database.WorkflowRunRecord
	for i, record := range records {
		if mostRecent == nil || record.RunCreatedAt.After(mostRecent.RunCreatedAt) {
			mostRecent = &records[i]
		}
	}
	return mostRecent
}
