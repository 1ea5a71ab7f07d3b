package buildstats

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "buildstats"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) GetBuildStats(ctx context.Context, build contracts.Build) (stats contracts.BuildStats, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetBuildStats"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetBuildStats(ctx, build)
}

func (s *tracingService) GetBuildDetailsStats(ctx context.Context, build contracts.Build) (stats contracts.BuildDetailsStats, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "GetBuildDetailsStats"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.GetBuildDetailsStats(ctx, build)
}

func (s *tracingService) InvalidateRepository(build contracts.Build) {
	s.Service.InvalidateRepository(build)
}
