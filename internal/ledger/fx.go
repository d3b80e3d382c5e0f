package ledger

import (
	"go.uber.org/fx"

	"github.com/metersharelabs/metershare/internal/ledger/repository"
	"github.com/metersharelabs/metershare/internal/ledger/service"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
