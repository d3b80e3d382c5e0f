package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/metersharelabs/metershare/internal/clock"
	tenantdomain "github.com/metersharelabs/metershare/internal/tenant/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  tenantdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  tenantdomain.Repository
}

func New(p Params) tenantdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req tenantdomain.CreateRequest) (*tenantdomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tenantdomain.ErrInvalidName
	}

	now := s.clock.Now(ctx)
	entity := &tenantdomain.Tenant{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return toResponse(entity), nil
}

func (s *Service) Update(ctx context.Context, id string, req tenantdomain.UpdateRequest) (*tenantdomain.Response, error) {
	tenantID, err := parseID(id)
	if err != nil {
		return nil, tenantdomain.ErrInvalidID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tenantdomain.ErrInvalidName
	}

	entity, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, tenantdomain.ErrNotFound
	}

	entity.Name = name
	entity.Phone = req.Phone
	entity.Email = req.Email
	entity.UpdatedAt = s.clock.Now(ctx)

	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return toResponse(entity), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tenantID, err := parseID(id)
	if err != nil {
		return tenantdomain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, tenantID)
}

func (s *Service) Get(ctx context.Context, id string) (*tenantdomain.Response, error) {
	tenantID, err := parseID(id)
	if err != nil {
		return nil, tenantdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, tenantdomain.ErrNotFound
	}
	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context) ([]tenantdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]tenantdomain.Response, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		resp = append(resp, *toResponse(item))
	}
	return resp, nil
}

func toResponse(t *tenantdomain.Tenant) *tenantdomain.Response {
	return &tenantdomain.Response{
		ID:        t.ID.String(),
		Name:      t.Name,
		Phone:     t.Phone,
		Email:     t.Email,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
