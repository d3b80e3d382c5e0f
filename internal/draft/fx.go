package draft

import (
	"go.uber.org/fx"

	"github.com/metersharelabs/metershare/internal/draft/repository"
	"github.com/metersharelabs/metershare/internal/draft/service"
)

var Module = fx.Module("draft.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
