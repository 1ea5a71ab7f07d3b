package buildsync

import (
	"context"

	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "buildsync"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) SyncBuildHistory(ctx context.Context, build contracts.Build) (result contracts.SyncResult, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "SyncBuildHistory", err) }()

	return s.Service.SyncBuildHistory(ctx, build)
}
