package service

import (
	"context"
	"encoding/json"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
	"github.com/metersharelabs/metershare/internal/clock"
	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  tariffdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  tariffdomain.Repository
}

func New(p Params) tariffdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tariff.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Update validates and activates a new rate schedule. The calculators
// never validate tariffs themselves, so everything they treat as a
// precondition is rejected here.
func (s *Service) Update(ctx context.Context, req tariffdomain.UpdateRequest) (*tariffdomain.Response, error) {
	if err := validateTariff(req); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(req.Slabs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	entity := &tariffdomain.Tariff{
		ID:           s.genID.Generate(),
		DemandCharge: req.DemandCharge,
		MeterRent:    req.MeterRent,
		VATRate:      req.VATRate,
		BkashCharge:  req.BkashCharge,
		Slabs:        datatypes.JSON(raw),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeactivateAll(ctx, tx, now); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, entity)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tariff updated",
		zap.String("tariff_id", entity.ID.String()),
		zap.Int("slabs", len(req.Slabs)),
	)

	return s.toResponse(entity)
}

func (s *Service) Get(ctx context.Context) (*tariffdomain.Response, error) {
	entity, err := s.repo.FindActive(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, tariffdomain.ErrNotFound
	}
	return s.toResponse(entity)
}

func (s *Service) ActiveConfig(ctx context.Context) (billingdomain.TariffConfig, error) {
	entity, err := s.repo.FindActive(ctx, s.db)
	if err != nil {
		return billingdomain.TariffConfig{}, err
	}
	if entity == nil {
		return billingdomain.TariffConfig{}, tariffdomain.ErrNotFound
	}
	return entity.Config()
}

func (s *Service) toResponse(t *tariffdomain.Tariff) (*tariffdomain.Response, error) {
	cfg, err := t.Config()
	if err != nil {
		return nil, err
	}
	return &tariffdomain.Response{
		ID:           t.ID.String(),
		DemandCharge: cfg.DemandCharge,
		MeterRent:    cfg.MeterRent,
		VATRate:      cfg.VATRate,
		BkashCharge:  cfg.BkashCharge,
		Slabs:        cfg.Slabs,
		UpdatedAt:    t.UpdatedAt,
	}, nil
}

func validateTariff(req tariffdomain.UpdateRequest) error {
	if req.DemandCharge < 0 || req.MeterRent < 0 || req.BkashCharge < 0 {
		return tariffdomain.ErrNegativeCharge
	}
	if req.VATRate < 0 || req.VATRate >= 1 {
		return tariffdomain.ErrInvalidVATRate
	}
	if len(req.Slabs) == 0 {
		return tariffdomain.ErrNoSlabs
	}

	previousLimit := 0.0
	for _, slab := range req.Slabs {
		if slab.Limit <= previousLimit {
			return tariffdomain.ErrSlabOrder
		}
		if slab.Rate <= 0 {
			return tariffdomain.ErrNonPositiveRate
		}
		previousLimit = slab.Limit
	}
	return nil
}
