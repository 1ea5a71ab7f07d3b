package buildstats

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) GetBuildStats(ctx context.Context, build contracts.Build) (stats contracts.BuildStats, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "GetBuildStats", begin)
	}(time.Now())

	return s.Service.GetBuildStats(ctx, build)
}

func (s *metricsService) GetBuildDetailsStats(ctx context.Context, build contracts.Build) (stats contracts.BuildDetailsStats, err error) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "GetBuildDetailsStats", begin)
	}(time.Now())

	return s.Service.GetBuildDetailsStats(ctx, build)
}

func (s *metricsService) InvalidateRepository(build contracts.Build) {
	defer func(begin time.Time) {
		api.UpdateMetrics(s.requestCount, s.requestLatency, "InvalidateRepository", begin)
	}(time.Now())

	s.Service.InvalidateRepository(build)
}
