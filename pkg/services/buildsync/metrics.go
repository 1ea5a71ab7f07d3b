package buildsync

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram, syncedRunsCount, parsedResultsCount metrics.Counter) Service {
	return &metricsService{s, requestCount, requestLatency, syncedRunsCount, parsedResultsCount}
}

type metricsService struct {
	Service            Service
	requestCount       metrics.Counter
	requestLatency     metrics.Histogram
	syncedRunsCount    metrics.Counter
	parsedResultsCount metrics.Counter
}

func (s *metricsService) SyncBuildHistory(ctx context.Context, build contracts.Build) (result contracts.SyncResult, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "SyncBuildHistory", begin)
	}(time.Now())

	result, err = s.Service.SyncBuildHistory(ctx, build)
	if err == nil {
		s.syncedRunsCount.Add(float64(result.NewRunsSynced))
		s.parsedResultsCount.Add(float64(result.TestResultsParsed))
	}

	return
}
