package buildstats

import (
	"context"
	"errors"
	"testing"
	"time"

	crypt "github.com/estafette/estafette-ci-crypt"
	gomock "github.com/golang/mock/gomock"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/cache"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/clients/githubapi"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func TestGetBuildStats(t *testing.T) {

	t.Run("ReturnsZeroStatsAndSevenEmptyDaysForBuildWithoutRuns", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		databaseClient.EXPECT().GetWorkflowRunsSince(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]database.WorkflowRunRecord{}, nil)
		databaseClient.EXPECT().GetRecentWorkflowRuns(gomock.Any(), build.TenantID, build.ID, recentRunsCount).Return([]database.WorkflowRunRecord{}, nil)
		databaseClient.EXPECT().GetLatestTestResult(gomock.Any(), build.TenantID, build.ID).Return(nil, nil)

		// act
		stats, err := service.GetBuildStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, 0, stats.TotalExecutions)
		assert.Equal(t, 0, stats.HealthPercentage)
		assert.Empty(t, stats.RecentRuns)
		assert.Nil(t, stats.TestStats)
		assert.Equal(t, statsWindowDays, len(stats.Last7DaysSuccesses))
		for _, day := range stats.Last7DaysSuccesses {
			assert.Equal(t, 0, day.SuccessCount)
			assert.Equal(t, 0, day.FailureCount)
		}
	})

	t.Run("RoundsHealthPercentageFromSuccessRatio", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		records := []database.WorkflowRunRecord{
			getRunRecord(1, contracts.StatusSuccess),
			getRunRecord(2, contracts.StatusSuccess),
			getRunRecord(3, contracts.StatusSuccess),
			getRunRecord(4, contracts.StatusFailure),
		}

		databaseClient.EXPECT().GetWorkflowRunsSince(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return(records, nil)
		databaseClient.EXPECT().GetRecentWorkflowRuns(gomock.Any(), build.TenantID, build.ID, recentRunsCount).Return(records[:3], nil)
		databaseClient.EXPECT().GetLatestTestResult(gomock.Any(), build.TenantID, build.ID).Return(nil, nil)

		// act
		stats, err := service.GetBuildStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, 4, stats.TotalExecutions)
		assert.Equal(t, 3, stats.SuccessfulExecutions)
		assert.Equal(t, 1, stats.FailedExecutions)
		assert.Equal(t, 75, stats.HealthPercentage)
		assert.Equal(t, 3, len(stats.RecentRuns))
	})

	t.Run("ReusesCachedMetadataWhenHeadCommitUnchanged", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.LastAnalyzedCommitSha = "abc123"
		build.Tags = []string{"v2.1.0", "v2.0.0"}
		build.TotalCommits = 812
		build.TotalContributors = 14
		build.CachedCommitsLast7Days = 9
		build.CachedContributorsLast7Days = 3

		expectDatabaseAggregation(databaseClient, build)
		githubapiClient.EXPECT().GetLastCommit(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return(&contracts.Commit{Sha: "abc123"}, nil)

		// act
		stats, err := service.GetBuildStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, "v2.1.0", stats.LastTag)
		assert.Equal(t, 812, stats.TotalCommits)
		assert.Equal(t, 14, stats.TotalContributors)
		assert.Equal(t, 9, stats.CommitsLast7Days)
		assert.Equal(t, 3, stats.ContributorsLast7Days)
		assert.Equal(t, "abc123", stats.LastCommit.Sha)
	})

	t.Run("RefreshesAndPersistsMetadataWhenHeadCommitMoved", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.LastAnalyzedCommitSha = "abc123"

		expectDatabaseAggregation(databaseClient, build)
		githubapiClient.EXPECT().GetLastCommit(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return(&contracts.Commit{Sha: "def456"}, nil)
		githubapiClient.EXPECT().GetTags(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return([]string{"v3.0.0"}, nil).Times(1)
		githubapiClient.EXPECT().GetCommitCount(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, nil).Return(900, nil).Times(1)
		githubapiClient.EXPECT().GetCommitCount(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, gomock.Not(nil)).Return(12, nil).Times(1)
		githubapiClient.EXPECT().GetContributorCount(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, gomock.Any()).Return(4, nil).Times(1)
		githubapiClient.EXPECT().GetTotalContributorCount(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return(17, nil).Times(1)
		databaseClient.EXPECT().UpdateBuildMetadataCache(gomock.Any(), build.TenantID, build.ID, contracts.MetadataCache{
			LastAnalyzedCommitSha:       "def456",
			Tags:                        []string{"v3.0.0"},
			TotalCommits:                900,
			TotalContributors:           17,
			CachedCommitsLast7Days:      12,
			CachedContributorsLast7Days: 4,
		}).Return(nil).Times(1)

		// act
		stats, err := service.GetBuildStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, "v3.0.0", stats.LastTag)
		assert.Equal(t, 900, stats.TotalCommits)
		assert.Equal(t, 17, stats.TotalContributors)
		assert.Equal(t, 12, stats.CommitsLast7Days)
		assert.Equal(t, 4, stats.ContributorsLast7Days)
	})

	t.Run("StillReturnsDatabaseStatsWhenGithubIsUnavailable", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()

		records := []database.WorkflowRunRecord{
			getRunRecord(1, contracts.StatusSuccess),
		}

		databaseClient.EXPECT().GetWorkflowRunsSince(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return(records, nil)
		databaseClient.EXPECT().GetRecentWorkflowRuns(gomock.Any(), build.TenantID, build.ID, recentRunsCount).Return(records, nil)
		databaseClient.EXPECT().GetLatestTestResult(gomock.Any(), build.TenantID, build.ID).Return(nil, nil)
		githubapiClient.EXPECT().GetLastCommit(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return(nil, githubapi.ErrRequestFailed)

		// act
		stats, err := service.GetBuildStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, 1, stats.TotalExecutions)
		assert.Equal(t, 100, stats.HealthPercentage)
		assert.Nil(t, stats.LastCommit)
		assert.Equal(t, 0, stats.TotalCommits)
	})

	t.Run("ServesSecondRequestWithinTtlFromCache", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		databaseClient.EXPECT().GetWorkflowRunsSince(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]database.WorkflowRunRecord{}, nil).Times(1)
		databaseClient.EXPECT().GetRecentWorkflowRuns(gomock.Any(), build.TenantID, build.ID, recentRunsCount).Return([]database.WorkflowRunRecord{}, nil).Times(1)
		databaseClient.EXPECT().GetLatestTestResult(gomock.Any(), build.TenantID, build.ID).Return(nil, nil).Times(1)

		// act
		_, err := service.GetBuildStats(context.Background(), build)
		assert.Nil(t, err)
		_, err = service.GetBuildStats(context.Background(), build)

		assert.Nil(t, err)
	})

	t.Run("RecomputesAfterInvalidateRepository", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		databaseClient.EXPECT().GetWorkflowRunsSince(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]database.WorkflowRunRecord{}, nil).Times(2)
		databaseClient.EXPECT().GetRecentWorkflowRuns(gomock.Any(), build.TenantID, build.ID, recentRunsCount).Return([]database.WorkflowRunRecord{}, nil).Times(2)
		databaseClient.EXPECT().GetLatestTestResult(gomock.Any(), build.TenantID, build.ID).Return(nil, nil).Times(2)

		// act
		_, err := service.GetBuildStats(context.Background(), build)
		assert.Nil(t, err)
		service.InvalidateRepository(build)
		_, err = service.GetBuildStats(context.Background(), build)

		assert.Nil(t, err)
	})
}

func TestGetBuildDetailsStats(t *testing.T) {

	t.Run("AddsMonthlySeriesAndContributorsToBaseStats", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()

		now := time.Now().UTC()

		expectDatabaseAggregation(databaseClient, build)
		githubapiClient.EXPECT().GetLastCommit(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return(nil, githubapi.ErrRequestFailed)
		databaseClient.EXPECT().GetMonthlyRunStats(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]contracts.MonthStats{
			{Year: now.Year(), Month: int(now.Month()), SuccessCount: 10, FailureCount: 2, TotalCount: 12},
		}, nil)
		databaseClient.EXPECT().GetTestResultSeries(gomock.Any(), build.TenantID, build.ID).Return([]contracts.TestTrendPoint{
			{GithubRunID: 1, TotalTests: 10, PassedTests: 7, FailedTests: 2, SkippedTests: 1},
		}, nil)
		githubapiClient.EXPECT().GetCommitsBetween(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, gomock.Any(), gomock.Any()).Return(5, nil).Times(trailingMonths)
		githubapiClient.EXPECT().GetContributors(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, contributorsLimit).Return([]contracts.Contributor{
			{Login: "rinke", Contributions: 812},
		}, nil)

		// act
		stats, err := service.GetBuildDetailsStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, trailingMonths, len(stats.MonthlyStats))
		assert.Equal(t, 12, stats.MonthlyStats[trailingMonths-1].TotalCount)
		assert.Equal(t, trailingMonths, len(stats.MonthlyCommits))
		assert.Equal(t, 5, stats.MonthlyCommits[0].CommitCount)
		assert.Equal(t, 1, len(stats.TestTrend))
		assert.Equal(t, 1, len(stats.Contributors))
	})

	t.Run("PadsMonthsWithoutRunsToTwelveZeroEntries", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		now := time.Now().UTC()
		activeMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -3, 0)

		expectDatabaseAggregation(databaseClient, build)
		databaseClient.EXPECT().GetMonthlyRunStats(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]contracts.MonthStats{
			{Year: activeMonth.Year(), Month: int(activeMonth.Month()), SuccessCount: 3, FailureCount: 1, TotalCount: 4},
		}, nil)
		databaseClient.EXPECT().GetTestResultSeries(gomock.Any(), build.TenantID, build.ID).Return([]contracts.TestTrendPoint{}, nil)

		// act
		stats, err := service.GetBuildDetailsStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, trailingMonths, len(stats.MonthlyStats))
		for i, month := range stats.MonthlyStats {
			expectedMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingMonths - 1 - i), 0)
			assert.Equal(t, expectedMonth.Year(), month.Year)
			assert.Equal(t, int(expectedMonth.Month()), month.Month)
			if i == trailingMonths-1-3 {
				assert.Equal(t, 4, month.TotalCount)
				assert.Equal(t, 3, month.SuccessCount)
				assert.Equal(t, 1, month.FailureCount)
			} else {
				assert.Equal(t, 0, month.TotalCount)
			}
		}
	})

	t.Run("DefaultsFailedMonthsToZeroWithoutFailingTheOthers", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()

		expectDatabaseAggregation(databaseClient, build)
		githubapiClient.EXPECT().GetLastCommit(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName).Return(nil, githubapi.ErrRequestFailed)
		databaseClient.EXPECT().GetMonthlyRunStats(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]contracts.MonthStats{}, nil)
		databaseClient.EXPECT().GetTestResultSeries(gomock.Any(), build.TenantID, build.ID).Return([]contracts.TestTrendPoint{}, nil)
		githubapiClient.EXPECT().GetCommitsBetween(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, gomock.Any(), gomock.Any()).Return(0, errors.New("rate limited")).Times(trailingMonths)
		githubapiClient.EXPECT().GetContributors(gomock.Any(), build.InlineToken, build.RepoOwner, build.RepoName, contributorsLimit).Return(nil, errors.New("rate limited"))

		// act
		stats, err := service.GetBuildDetailsStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, trailingMonths, len(stats.MonthlyCommits))
		for _, month := range stats.MonthlyCommits {
			assert.Equal(t, 0, month.CommitCount)
		}
		assert.Empty(t, stats.Contributors)
	})

	t.Run("OmitsCommitAndContributorSeriesWithoutCredential", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		githubapiClient := githubapi.NewMockClient(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		service := NewService(getConfig(), githubapiClient, databaseClient, getSecretHelper(), cache.New())

		build := getBuild()
		build.InlineToken = ""
		build.AccessTokenID = ""

		expectDatabaseAggregation(databaseClient, build)
		databaseClient.EXPECT().GetMonthlyRunStats(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]contracts.MonthStats{}, nil)
		databaseClient.EXPECT().GetTestResultSeries(gomock.Any(), build.TenantID, build.ID).Return([]contracts.TestTrendPoint{}, nil)

		// act
		stats, err := service.GetBuildDetailsStats(context.Background(), build)

		assert.Nil(t, err)
		assert.Equal(t, trailingMonths, len(stats.MonthlyCommits))
		assert.Empty(t, stats.Contributors)
	})
}

func expectDatabaseAggregation(databaseClient *database.MockClient, build contracts.Build) {
	databaseClient.EXPECT().GetWorkflowRunsSince(gomock.Any(), build.TenantID, build.ID, gomock.Any()).Return([]database.WorkflowRunRecord{}, nil)
	databaseClient.EXPECT().GetRecentWorkflowRuns(gomock.Any(), build.TenantID, build.ID, recentRunsCount).Return([]database.WorkflowRunRecord{}, nil)
	databaseClient.EXPECT().GetLatestTestResult(gomock.Any(), build.TenantID, build.ID).Return(nil, nil)
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

func getRunRecord(githubRunID int64, status contracts.Status) database.WorkflowRunRecord {
	now := time.Now().UTC()
	return database.WorkflowRunRecord{
		TenantID:     "tenant-1",
		BuildID:      "build-1",
		GithubRunID:  githubRunID,
		Name:         "ci",
		Status:       status,
		HeadBranch:   "main",
		RunCreatedAt: now.Add(time.Duration(-githubRunID) * time.Hour),
		RunUpdatedAt: now,
	}
}
