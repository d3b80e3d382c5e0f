package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/metersharelabs/metershare/internal/clock"
	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
	ledgerdomain "github.com/metersharelabs/metershare/internal/ledger/domain"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   ledgerdomain.Repository
	Drafts draftdomain.Service
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   ledgerdomain.Repository
	drafts draftdomain.Service
}

func New(p Params) ledgerdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("ledger.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		drafts: p.Drafts,
	}
}

func (s *Service) Save(ctx context.Context) (*ledgerdomain.Response, error) {
	draft, err := s.drafts.Get(ctx)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ledgerdomain.ErrNoDraft
	}

	raw, err := json.Marshal(ledgerdomain.BillSnapshot{
		Config:    draft.Config,
		MainMeter: draft.MainMeter,
		Meters:    draft.Meters,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	entity := &ledgerdomain.SavedBill{
		ID:            s.genID.Generate(),
		SavedAt:       now,
		DateGenerated: draft.Config.DateGenerated,
		Snapshot:      datatypes.JSON(raw),
		CreatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("bill snapshot saved",
		zap.String("bill_id", entity.ID.String()),
		zap.String("month", draft.Config.Month),
	)

	return s.toResponse(entity)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	billID, err := parseID(id)
	if err != nil {
		return ledgerdomain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, billID)
}

func (s *Service) List(ctx context.Context) ([]ledgerdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]ledgerdomain.Response, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out, err := s.toResponse(item)
		if err != nil {
			return nil, err
		}
		resp = append(resp, *out)
	}
	return resp, nil
}

func (s *Service) LoadIntoDraft(ctx context.Context, id string) (*ledgerdomain.Response, error) {
	billID, err := parseID(id)
	if err != nil {
		return nil, ledgerdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, billID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ledgerdomain.ErrNotFound
	}

	snap, err := entity.Decode()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	err = s.drafts.Replace(ctx, draftdomain.Draft{
		Config:    snap.Config,
		MainMeter: snap.MainMeter,
		Meters:    snap.Meters,
	}, now)
	if err != nil {
		return nil, err
	}

	return s.toResponse(entity)
}

func (s *Service) toResponse(b *ledgerdomain.SavedBill) (*ledgerdomain.Response, error) {
	snap, err := b.Decode()
	if err != nil {
		return nil, err
	}
	return &ledgerdomain.Response{
		ID:        b.ID.String(),
		SavedAt:   b.SavedAt,
		Snapshot:  snap,
		TotalBill: snap.Config.TotalBillPayable,
	}, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
