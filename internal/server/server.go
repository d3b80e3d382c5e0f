package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	billingservice "github.com/metersharelabs/metershare/internal/billing/service"
	"github.com/metersharelabs/metershare/internal/config"
	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
	ledgerdomain "github.com/metersharelabs/metershare/internal/ledger/domain"
	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
	tenantdomain "github.com/metersharelabs/metershare/internal/tenant/domain"
)

type Params struct {
	fx.In

	Engine     *gin.Engine
	Log        *zap.Logger
	TariffSvc  tariffdomain.Service
	TenantSvc  tenantdomain.Service
	DraftSvc   draftdomain.Service
	BillingSvc billingservice.Service
	LedgerSvc  ledgerdomain.Service
}

type Server struct {
	engine     *gin.Engine
	log        *zap.Logger
	tariffSvc  tariffdomain.Service
	tenantSvc  tenantdomain.Service
	draftSvc   draftdomain.Service
	billingSvc billingservice.Service
	ledgerSvc  ledgerdomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		engine:     p.Engine,
		log:        p.Log.Named("server"),
		tariffSvc:  p.TariffSvc,
		tenantSvc:  p.TenantSvc,
		draftSvc:   p.DraftSvc,
		billingSvc: p.BillingSvc,
		ledgerSvc:  p.LedgerSvc,
	}
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	api.GET("/tariff", s.GetTariff)
	api.PUT("/tariff", s.UpdateTariff)

	api.GET("/tenants", s.ListTenants)
	api.POST("/tenants", s.CreateTenant)
	api.GET("/tenants/:id", s.GetTenant)
	api.PUT("/tenants/:id", s.UpdateTenant)
	api.DELETE("/tenants/:id", s.DeleteTenant)

	api.GET("/draft", s.GetDraft)
	api.PUT("/draft", s.PutDraft)

	api.POST("/bill/allocate", s.AllocateBill)
	api.POST("/estimate/forward", s.EstimateForward)
	api.POST("/estimate/reverse", s.EstimateReverse)

	api.POST("/bills", s.SaveBill)
	api.GET("/bills", s.ListBills)
	api.DELETE("/bills/:id", s.DeleteBill)
	api.POST("/bills/:id/load", s.LoadBill)
}

func RunHTTP(lc fx.Lifecycle, s *Server, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
