package service

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
	"github.com/metersharelabs/metershare/internal/billing/engine"
	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
	"github.com/metersharelabs/metershare/internal/observability"
	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
)

// ErrNoDraft is returned when an allocation is requested before any
// working session exists.
var ErrNoDraft = errors.New("billing: no draft to allocate")

// AllocationResponse wraps the splitter output with the diagnostics the
// UI shows next to it.
type AllocationResponse struct {
	Month      string                              `json:"month"`
	Result     billingdomain.BillCalculationResult `json:"result"`
	MainUnits  float64                             `json:"main_units"`
	SystemLoss float64                             `json:"system_loss"`
}

type Service interface {
	// AllocateCurrent runs the splitter over the active draft and tariff.
	AllocateCurrent(ctx context.Context) (*AllocationResponse, error)
	Forward(ctx context.Context, units float64) (billingdomain.ForwardEstimate, error)
	Reverse(ctx context.Context, bill float64) (billingdomain.ReverseEstimate, error)
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Tariffs tariffdomain.Service
	Drafts  draftdomain.Service
	Metrics *observability.Metrics `optional:"true"`
}

type service struct {
	log     *zap.Logger
	tariffs tariffdomain.Service
	drafts  draftdomain.Service
	metrics *observability.Metrics
}

func New(p Params) Service {
	return &service{
		log:     p.Log.Named("billing.service"),
		tariffs: p.Tariffs,
		drafts:  p.Drafts,
		metrics: p.Metrics,
	}
}

func (s *service) AllocateCurrent(ctx context.Context) (*AllocationResponse, error) {
	draft, err := s.drafts.Get(ctx)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrNoDraft
	}

	tariff, err := s.tariffs.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}

	result := engine.Allocate(draft.Config, draft.Meters, tariff)
	s.count("allocate")

	return &AllocationResponse{
		Month:      draft.Config.Month,
		Result:     result,
		MainUnits:  draft.MainMeter.UnitsUsed(),
		SystemLoss: engine.SystemLoss(draft.MainMeter, draft.Meters),
	}, nil
}

func (s *service) Forward(ctx context.Context, units float64) (billingdomain.ForwardEstimate, error) {
	tariff, err := s.tariffs.ActiveConfig(ctx)
	if err != nil {
		return billingdomain.ForwardEstimate{}, err
	}
	s.count("estimate_forward")
	return engine.EstimateForward(units, tariff), nil
}

func (s *service) Reverse(ctx context.Context, bill float64) (billingdomain.ReverseEstimate, error) {
	tariff, err := s.tariffs.ActiveConfig(ctx)
	if err != nil {
		return billingdomain.ReverseEstimate{}, err
	}
	s.count("estimate_reverse")
	return engine.EstimateReverse(bill, tariff), nil
}

func (s *service) count(op string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CalculationsTotal.WithLabelValues(op).Inc()
}
