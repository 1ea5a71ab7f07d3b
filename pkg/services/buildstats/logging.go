package buildstats

import (
	"context"

	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "buildstats"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) GetBuildStats(ctx context.Context, build contracts.Build) (stats contracts.BuildStats, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GetBuildStats", err) }()

	return s.Service.GetBuildStats(ctx, build)
}

func (s *loggingService) GetBuildDetailsStats(ctx context.Context, build contracts.Build) (stats contracts.BuildDetailsStats, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "GetBuildDetailsStats", err) }()

	return s.Service.GetBuildDetailsStats(ctx, build)
}

func (s *loggingService) InvalidateRepository(build contracts.Build) {
	s.Service.InvalidateRepository(build)
}
