package service

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo draftdomain.Repository
}

type Service struct {
	log  *zap.Logger
	repo draftdomain.Repository
}

func New(p Params) draftdomain.Service {
	return &Service{
		log:  p.Log.Named("draft.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (*draftdomain.Draft, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Put(ctx context.Context, draft draftdomain.Draft) (draftdomain.PutResult, error) {
	result, err := s.repo.Put(ctx, draft)
	if err != nil {
		return draftdomain.PutResult{}, err
	}
	if !result.Stored {
		s.log.Debug("stale draft write dropped",
			zap.Time("incoming", draft.UpdatedAt),
			zap.Time("stored", result.Current.UpdatedAt),
		)
	}
	return result, nil
}

func (s *Service) Replace(ctx context.Context, draft draftdomain.Draft, at time.Time) error {
	draft.UpdatedAt = at
	// The stored draft may carry a timestamp ahead of server time, so this
	// must bypass the last-write-wins comparison entirely.
	return s.repo.Force(ctx, draft)
}
