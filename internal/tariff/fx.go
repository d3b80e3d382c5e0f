package tariff

import (
	"go.uber.org/fx"

	"github.com/metersharelabs/metershare/internal/tariff/repository"
	"github.com/metersharelabs/metershare/internal/tariff/service"
)

var Module = fx.Module("tariff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
