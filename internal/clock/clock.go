// Package clock abstracts wall time so services that stamp snapshots can
// be tested against a fixed instant.
package clock

import (
	"context"
	"time"

	"go.uber.org/fx"
)

type Clock interface {
	Now(ctx context.Context) time.Time
}

var Module = fx.Module("clock",
	fx.Provide(func() Clock { return SystemClock{} }),
)
