package tenant

import (
	"go.uber.org/fx"

	"github.com/metersharelabs/metershare/internal/tenant/repository"
	"github.com/metersharelabs/metershare/internal/tenant/service"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
