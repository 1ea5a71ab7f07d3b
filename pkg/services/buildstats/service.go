package buildstats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	crypt "github.com/estafette/estafette-ci-crypt"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/cache"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/clients/githubapi"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNoCredential is returned when a build carries neither an inline token nor a
// reference to a managed access token
var ErrNoCredential = errors.New("the build has no credential to call the github api with")

const (
	statsWindowDays      = 7
	recentRunsCount      = 3
	trailingMonths       = 12
	contributorsLimit    = 50
	monthlyCommitWorkers = 6
)

// Service aggregates persisted workflow runs and repository metadata into the
// statistics snapshots rendered by the dashboard
//
//go:generate mockgen -package=buildstats -destination ./mock.go -source=service.go
type Service interface {
	GetBuildStats(ctx context.Context, build contracts.Build) (stats contracts.BuildStats, err error)
	GetBuildDetailsStats(ctx context.Context, build contracts.Build) (stats contracts.BuildDetailsStats, err error)
	InvalidateRepository(build contracts.Build)
}

// NewService returns a new buildstats.Service
func NewService(config *api.APIConfig, githubapiClient githubapi.Client, databaseClient database.Client, secretHelper crypt.SecretHelper, statsCache cache.Cache) Service {
	return &service{
		config:          config,
		githubapiClient: githubapiClient,
		databaseClient:  databaseClient,
		secretHelper:    secretHelper,
		statsCache:      statsCache,
	}
}

type service struct {
	config          *api.APIConfig
	githubapiClient githubapi.Client
	databaseClient  database.Client
	secretHelper    crypt.SecretHelper
	statsCache      cache.Cache
}

func (s *service) GetBuildStats(ctx context.Context, build contracts.Build) (stats contracts.BuildStats, err error) {

	key := cache.RepositoryKey(build.RepoOwner, build.RepoName, "stats", build.ID)
	ttl := time.Duration(s.config.Cache.StatsTTLSeconds) * time.Second

	value, err := s.statsCache.Get(ctx, key, ttl, func(ctx context.Context) (interface{}, error) {
		return s.computeBuildStats(ctx, build)
	})
	if err != nil {
		return
	}

	return value.(contracts.BuildStats), nil
}

func (s *service) GetBuildDetailsStats(ctx context.Context, build contracts.Build) (stats contracts.BuildDetailsStats, err error) {

	key := cache.RepositoryKey(build.RepoOwner, build.RepoName, "details", build.ID)
	ttl := time.Duration(s.config.Cache.DetailsTTLSeconds) * time.Second

	value, err := s.statsCache.Get(ctx, key, ttl, func(ctx context.Context) (interface{}, error) {
		return s.computeBuildDetailsStats(ctx, build)
	})
	if err != nil {
		return
	}

	return value.(contracts.BuildDetailsStats), nil
}

// InvalidateRepository drops every cached snapshot for the build's repository so the
// next request recomputes from the database and github
func (s *service) InvalidateRepository(build contracts.Build) {
	s.statsCache.Invalidate(cache.RepositoryKey(build.RepoOwner, build.RepoName))
}

func (s *service) computeBuildStats(ctx context.Context, build contracts.Build) (stats contracts.BuildStats, err error) {

	now := time.Now().UTC()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := startOfToday.AddDate(0, 0, -(statsWindowDays - 1))

	records, err := s.databaseClient.GetWorkflowRunsSince(ctx, build.TenantID, build.ID, windowStart)
	if err != nil {
		return
	}

	for _, record := range records {
		stats.TotalExecutions++
		switch record.Status {
		case contracts.StatusSuccess:
			stats.SuccessfulExecutions++
		case contracts.StatusFailure:
			stats.FailedExecutions++
		}
	}
	if stats.TotalExecutions > 0 {
		stats.HealthPercentage = int(math.Round(float64(stats.SuccessfulExecutions) / float64(stats.TotalExecutions) * 100))
	}

	stats.Last7DaysSuccesses = tallyPerDay(records, windowStart)

	recentRecords, err := s.databaseClient.GetRecentWorkflowRuns(ctx, build.TenantID, build.ID, recentRunsCount)
	if err != nil {
		return
	}
	stats.RecentRuns = make([]contracts.RecentRun, 0, len(recentRecords))
	for _, record := range recentRecords {
		stats.RecentRuns = append(stats.RecentRuns, record.ToRecentRun())
	}

	latestTestResult, err := s.databaseClient.GetLatestTestResult(ctx, build.TenantID, build.ID)
	if err != nil {
		return
	}
	if latestTestResult != nil {
		stats.TestStats = &contracts.TestStats{
			TotalTests:   latestTestResult.TotalTests,
			PassedTests:  latestTestResult.PassedTests,
			FailedTests:  latestTestResult.FailedTests,
			SkippedTests: latestTestResult.SkippedTests,
			ParsedAt:     latestTestResult.ParsedAt,
		}
	}

	s.enrichWithRepositoryMetadata(ctx, build, &stats)

	return stats, nil
}

func (s *service) computeBuildDetailsStats(ctx context.Context, build contracts.Build) (stats contracts.BuildDetailsStats, err error) {

	stats.BuildStats, err = s.computeBuildStats(ctx, build)
	if err != nil {
		return
	}

	now := time.Now().UTC()
	monthsStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingMonths - 1), 0)

	monthlyRunStats, err := s.databaseClient.GetMonthlyRunStats(ctx, build.TenantID, build.ID, monthsStart)
	if err != nil {
		return
	}
	stats.MonthlyStats = zeroFillMonthlyStats(monthlyRunStats, monthsStart)

	stats.TestTrend, err = s.databaseClient.GetTestResultSeries(ctx, build.TenantID, build.ID)
	if err != nil {
		return
	}

	token, tokenErr := s.resolveCredential(ctx, build)
	if tokenErr != nil {
		log.Warn().Err(tokenErr).Msgf("No usable github credential for build %v, omitting commit and contributor series", build.FullRepoPath())
		stats.MonthlyCommits = zeroMonthlyCommits(monthsStart)
		stats.Contributors = []contracts.Contributor{}
		return stats, nil
	}

	stats.MonthlyCommits = s.getMonthlyCommits(ctx, build, token, monthsStart)

	stats.Contributors = bestEffort(build, "contributors list", []contracts.Contributor{}, func() ([]contracts.Contributor, error) {
		return s.githubapiClient.GetContributors(ctx, token, build.RepoOwner, build.RepoName, contributorsLimit)
	})

	return stats, nil
}

// enrichWithRepositoryMetadata adds tags, commit and contributor counts to the snapshot,
// reusing the values cached on the build record as long as the repository head commit
// has not moved; every github failure degrades to the zero value so database statistics
// are always returned
func (s *service) enrichWithRepositoryMetadata(ctx context.Context, build contracts.Build, stats *contracts.BuildStats) {

	token, err := s.resolveCredential(ctx, build)
	if err != nil {
		log.Warn().Err(err).Msgf("No usable github credential for build %v, omitting repository metadata", build.FullRepoPath())
		return
	}

	lastCommit := bestEffort(build, "last commit", nil, func() (*contracts.Commit, error) {
		return s.githubapiClient.GetLastCommit(ctx, token, build.RepoOwner, build.RepoName)
	})
	if lastCommit == nil {
		return
	}

	stats.LastCommit = lastCommit

	if build.LastAnalyzedCommitSha != "" && build.LastAnalyzedCommitSha == lastCommit.Sha {
		if len(build.Tags) > 0 {
			stats.LastTag = build.Tags[0]
		}
		stats.TotalCommits = build.TotalCommits
		stats.TotalContributors = build.TotalContributors
		stats.CommitsLast7Days = build.CachedCommitsLast7Days
		stats.ContributorsLast7Days = build.CachedContributorsLast7Days
		return
	}

	sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -statsWindowDays)

	tags := bestEffort(build, "tags", []string{}, func() ([]string, error) {
		return s.githubapiClient.GetTags(ctx, token, build.RepoOwner, build.RepoName)
	})
	totalCommits := bestEffort(build, "total commit count", 0, func() (int, error) {
		return s.githubapiClient.GetCommitCount(ctx, token, build.RepoOwner, build.RepoName, nil)
	})
	commitsLast7Days := bestEffort(build, "recent commit count", 0, func() (int, error) {
		return s.githubapiClient.GetCommitCount(ctx, token, build.RepoOwner, build.RepoName, &sevenDaysAgo)
	})
	contributorsLast7Days := bestEffort(build, "recent contributor count", 0, func() (int, error) {
		return s.githubapiClient.GetContributorCount(ctx, token, build.RepoOwner, build.RepoName, sevenDaysAgo)
	})
	totalContributors := bestEffort(build, "total contributor count", 0, func() (int, error) {
		return s.githubapiClient.GetTotalContributorCount(ctx, token, build.RepoOwner, build.RepoName)
	})

	if len(tags) > 0 {
		stats.LastTag = tags[0]
	}
	stats.TotalCommits = totalCommits
	stats.TotalContributors = totalContributors
	stats.CommitsLast7Days = commitsLast7Days
	stats.ContributorsLast7Days = contributorsLast7Days

	if err := s.databaseClient.UpdateBuildMetadataCache(ctx, build.TenantID, build.ID, contracts.MetadataCache{
		LastAnalyzedCommitSha:       lastCommit.Sha,
		Tags:                        tags,
		TotalCommits:                totalCommits,
		TotalContributors:           totalContributors,
		CachedCommitsLast7Days:      commitsLast7Days,
		CachedContributorsLast7Days: contributorsLast7Days,
	}); err != nil {
		log.Warn().Err(err).Msgf("Failed caching repository metadata for build %v", build.FullRepoPath())
	}
}

// getMonthlyCommits counts commits per trailing calendar month, fetching the independent
// month windows concurrently; a failed month defaults to 0 without affecting the others
func (s *service) getMonthlyCommits(ctx context.Context, build contracts.Build, token string, monthsStart time.Time) (monthlyCommits []contracts.MonthCommits) {

	monthlyCommits = zeroMonthlyCommits(monthsStart)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(monthlyCommitWorkers)

	for i := range monthlyCommits {
		i := i
		from := time.Date(monthlyCommits[i].Year, time.Month(monthlyCommits[i].Month), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		g.Go(func() error {
			monthlyCommits[i].CommitCount = bestEffort(build, fmt.Sprintf("commit count for %d-%02d", monthlyCommits[i].Year, monthlyCommits[i].Month), 0, func() (int, error) {
				return s.githubapiClient.GetCommitsBetween(ctx, token, build.RepoOwner, build.RepoName, from, to)
			})
			return nil
		})
	}

	// workers never return an error
	_ = g.Wait()

	return monthlyCommits
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

// tallyPerDay returns exactly statsWindowDays entries ordered oldest to newest, including
// all-zero entries for days without runs
func tallyPerDay(records []database.WorkflowRunRecord, windowStart time.Time) (days []contracts.DayStats) {

	days = make([]contracts.DayStats, statsWindowDays)
	for i := range days {
		days[i] = contracts.DayStats{Date: windowStart.AddDate(0, 0, i)}
	}

	for _, record := range records {
		day := int(record.RunCreatedAt.UTC().Truncate(24 * time.Hour).Sub(windowStart).Hours() / 24)
		if day < 0 || day >= statsWindowDays {
			continue
		}
		switch record.Status {
		case contracts.StatusSuccess:
			days[day].SuccessCount++
		case contracts.StatusFailure:
			days[day].FailureCount++
		}
	}

	return days
}

// zeroFillMonthlyStats pads the aggregated rows out to one entry per trailing calendar
// month, oldest first, so months without any runs show up as zero counts
func zeroFillMonthlyStats(rows []contracts.MonthStats, monthsStart time.Time) (monthlyStats []contracts.MonthStats) {

	monthlyStats = make([]contracts.MonthStats, trailingMonths)
	for i := range monthlyStats {
		month := monthsStart.AddDate(0, i, 0)
		monthlyStats[i] = contracts.MonthStats{Year: month.Year(), Month: int(month.Month())}
	}

	for _, row := range rows {
		monthIndex := (row.Year-monthsStart.Year())*12 + row.Month - int(monthsStart.Month())
		if monthIndex < 0 || monthIndex >= trailingMonths {
			continue
		}
		monthlyStats[monthIndex] = row
	}

	return monthlyStats
}

// zeroMonthlyCommits returns one all-zero entry per trailing calendar month, oldest first
func zeroMonthlyCommits(monthsStart time.Time) (monthlyCommits []contracts.MonthCommits) {

	monthlyCommits = make([]contracts.MonthCommits, trailingMonths)
	for i := range monthlyCommits {
		month := monthsStart.AddDate(0, i, 0)
		monthlyCommits[i] = contracts.MonthCommits{Year: month.Year(), Month: int(month.Month())}
	}

	return monthlyCommits
}

// bestEffort runs a repository metadata fetch and degrades to the passed fallback on
// failure, so github outages never hide the database-derived statistics
func bestEffort[T any](build contracts.Build, description string, fallback T, fetch func() (T, error)) T {

	value, err := fetch()
	if err != nil {
		log.Warn().Err(err).Msgf("Failed fetching %v for repository %v, degrading to fallback", description, build.FullRepoPath())
		return fallback
	}

	return value
}
