package billing

import (
	"go.uber.org/fx"

	"github.com/metersharelabs/metershare/internal/billing/service"
)

var Module = fx.Module("billing.service",
	fx.Provide(service.New),
)
