package buildsync

import (
	"context"
	"errors"
	"testing"
	"time"

	crypt "github.com/estafette/estafette-ci-crypt"
	gomock "github.com/golang/mock/gomock"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/clients/githubapi"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func TestSyncBuildHistory(t *testing.T) {

	t.Run("UpsertsAllMatchedRunsInOneCall", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		runs := getCompletedRuns(3)

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return(runs, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Len(3)).Return(3, nil).Times(1)
		databaseClient.EXPECT().TestResultExists(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return(false, nil).Times(3)
		githubapiClient.EXPECT().GetArtifacts(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, gomock.Any()).Return([]contracts.Artifact{}, nil).Times(3)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 3, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		result, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, 3, result.NewRunsSynced)
		assert.Equal(t, 0, result.TestResultsParsed)
	})

	t.Run("CreatesCheckpointLazilyWhenNoneExists", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(nil, nil)
		databaseClient.EXPECT().UpsertBuildSyncStatus(gomock.Any(), database.BuildSyncStatusRecord{BuildID: build.ID, TenantID: build.TenantID}).Return(nil).Times(1)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]contracts.WorkflowRun{}, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Any()).Return(0, nil)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 0, gomock.Any(), nil, nil).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		_, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
	})

	t.Run("CapsArtifactFetchesAtMaxTestResultBackfill", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		runs := getCompletedRuns(100)

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(runs, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Len(100)).Return(100, nil)
		databaseClient.EXPECT().TestResultExists(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return(false, nil).Times(maxTestResultBackfill)
		githubapiClient.EXPECT().GetArtifacts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]contracts.Artifact{}, nil).Times(maxTestResultBackfill)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 100, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		result, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, 100, result.NewRunsSynced)
	})

	t.Run("SkipsArtifactFetchForRunsStillInProgress", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		runs := getCompletedRuns(1)
		runs = append(runs, contracts.WorkflowRun{
			ID:        999,
			Name:      "ci",
			Status:    contracts.StatusInProgress,
			CreatedAt: time.Now().UTC(),
		})

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(runs, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Len(2)).Return(2, nil)
		databaseClient.EXPECT().TestResultExists(gomock.Any(), build.TenantID, build.ID, runs[0].ID).Return(false, nil).Times(1)
		githubapiClient.EXPECT().GetArtifacts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), runs[0].ID).Return([]contracts.Artifact{}, nil).Times(1)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 2, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		_, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
	})

	t.Run("SkipsArtifactFetchForRunsWithExistingTestResult", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		runs := getCompletedRuns(1)

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(runs, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Any()).Return(1, nil)
		databaseClient.EXPECT().TestResultExists(gomock.Any(), build.TenantID, build.ID, runs[0].ID).Return(true, nil)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 1, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		result, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, 0, result.TestResultsParsed)
	})

	t.Run("ContinuesBatchWhenOneArtifactDownloadFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		runs := getCompletedRuns(2)
		artifacts := []contracts.Artifact{
			{ID: 11, Name: "test-results", URL: "https://api.github.com/artifacts/11"},
		}
		report := []byte(`<testsuites tests="10" failures="2" skipped="1"><testsuite name="pkg"></testsuite></testsuites>`)

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(runs, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Any()).Return(2, nil)
		databaseClient.EXPECT().TestResultExists(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return(false, nil).Times(2)
		githubapiClient.EXPECT().GetArtifacts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), runs[0].ID).Return(artifacts, nil)
		githubapiClient.EXPECT().GetArtifacts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), runs[1].ID).Return(artifacts, nil)
		githubapiClient.EXPECT().DownloadArtifact(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), int64(11)).Return(nil, errors.New("zip truncated"))
		githubapiClient.EXPECT().DownloadArtifact(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), int64(11)).Return(report, nil)
		databaseClient.EXPECT().InsertTestResult(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 2, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		result, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, 1, result.TestResultsParsed)
	})

	t.Run("RecordsSyncErrorAndReRaisesWhenRunListingFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, githubapi.ErrRequestFailed)
		databaseClient.EXPECT().UpdateBuildSyncError(gomock.Any(), build.TenantID, build.ID, githubapi.ErrRequestFailed.Error()).Return(nil).Times(1)

		// act
		_, err := service.SyncBuildHistory(context.Background(), build)

		assert.True(t, errors.Is(err, githubapi.ErrRequestFailed))
	})

	t.Run("FetchesTagsOnlyWhenBuildHasTagSelector", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		build.Selectors = []contracts.Selector{
			{Type: contracts.SelectorTypeTag, Pattern: "v1.*"},
		}

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetTags(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return([]string{"v1.0.0"}, nil).Times(1)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]contracts.WorkflowRun{}, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Any()).Return(0, nil)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 0, gomock.Any(), nil, nil).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		_, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
	})

	t.Run("MapsMissingHeadShaToUnknownSentinel", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		runs := []contracts.WorkflowRun{
			{ID: 1, Name: "ci", Status: contracts.StatusSuccess, CreatedAt: time.Now().UTC()},
		}

		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(runs, nil)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, records []database.WorkflowRunRecord) (int, error) {
			assert.Equal(t, unknownCommitSha, records[0].CommitSha)
			return 1, nil
		})
		databaseClient.EXPECT().TestResultExists(gomock.Any(), build.TenantID, build.ID, int64(1)).Return(true, nil)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 1, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		_, err := service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
	})

	t.Run("ReturnsErrNoCredentialWhenBuildHasNoTokenOrReference", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), "tenant-1", "build-1").Return(&database.BuildSyncStatusRecord{BuildID: "build-1", TenantID: "tenant-1"}, nil)
		databaseClient.EXPECT().UpdateBuildSyncError(gomock.Any(), "tenant-1", "build-1", ErrNoCredential.Error()).Return(nil)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		// act
		_, err := service.SyncBuildHistory(context.Background(), build)

		assert.True(t, errors.Is(err, ErrNoCredential))
	})

	t.Run("RecordsCredentialFailureOnFirstEverSync", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), "tenant-1", "build-1").Return(nil, nil)
		databaseClient.EXPECT().UpsertBuildSyncStatus(gomock.Any(), database.BuildSyncStatusRecord{BuildID: "build-1", TenantID: "tenant-1"}).Return(nil)
		databaseClient.EXPECT().UpdateBuildSyncError(gomock.Any(), "tenant-1", "build-1", ErrNoCredential.Error()).Return(nil)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		// act
		_, err := service.SyncBuildHistory(context.Background(), build)

		assert.True(t, errors.Is(err, ErrNoCredential))
	})

	t.Run("DecryptsManagedAccessTokenWhenNoInlineToken", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		secretHelper := getSecretHelper()
		encryptedToken, err := secretHelper.EncryptEnvelope("ghp_managed", "")
		if !assert.Nil(t, err) {
			return
		}

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, secretHelper)

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = "token-1"

		databaseClient.EXPECT().GetAccessToken(gomock.Any(), build.TenantID, "token-1").Return(&database.AccessTokenRecord{
			ID:             "token-1",
			TenantID:       build.TenantID,
			EncryptedToken: encryptedToken,
		}, nil)
		databaseClient.EXPECT().GetBuildSyncStatus(gomock.Any(), build.TenantID, build.ID).Return(&database.BuildSyncStatusRecord{}, nil)
		githubapiClient.EXPECT().GetWorkflowRuns(gomock.Any(), "ghp_managed", build.RepoOwner, build.RepoName).Return([]contracts.WorkflowRun{}, nil).Times(1)
		databaseClient.EXPECT().GetWorkflowRunIDs(gomock.Any(), build.TenantID, build.ID).Return(map[int64]struct{}{}, nil)
		databaseClient.EXPECT().UpsertWorkflowRuns(gomock.Any(), gomock.Any()).Return(0, nil)
		databaseClient.EXPECT().UpdateBuildSyncSuccess(gomock.Any(), build.TenantID, build.ID, 0, gomock.Any(), nil, nil).Return(nil)
		databaseClient.EXPECT().MarkInitialBackfillCompleted(gomock.Any(), build.TenantID, build.ID).Return(nil)

		// act
		_, err = service.SyncBuildHistory(context.Background(), build)

		assert.Nil(t, err)
	})
}

func getConfig() *api.APIConfig {
	config := &api.APIConfig{}
	config.SetDefaults()

	return config
}

func getSecretHelper() crypt.SecretHelper {
	return crypt.NewSecretHelper("SazbwMf3NZxVVbBqQHebPcXCqrVn3DDp", false)
}

func getBuild() contracts.Build {
	return contracts.Build{
		ID:          "build-1",
		TenantID:    "tenant-1",
		Name:        "api build",
		RepoOwner:   "pipesight",
		RepoName:    "pipesight-api",
		InlineToken: "ghp_inline",
	}
}

func getCompletedRuns(count int) (runs []contracts.WorkflowRun) {
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		runs = append(runs, contracts.WorkflowRun{
			ID:         int64(i + 1),
			Name:       "ci",
			Status:     contracts.StatusSuccess,
			Conclusion: "success",
			HeadBranch: "main",
			HeadSha:    "a1b2c3d4",
			CreatedAt:  now.Add(time.Duration(-i) * time.Hour),
			UpdatedAt:  now.Add(time.Duration(-i) * time.Hour).Add(2 * time.Minute),
		})
	}
	return runs
}
