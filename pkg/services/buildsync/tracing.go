package buildsync

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "buildsync"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) SyncBuildHistory(ctx context.Context, build contracts.Build) (result contracts.SyncResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "SyncBuildHistory"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.SyncBuildHistory(ctx, build)
}
