package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
)

func newTestRepo(t *testing.T) draftdomain.Repository {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return Provide(client)
}

func TestGetEmpty(t *testing.T) {
	repo := newTestRepo(t)

	draft, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestPutAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	draft := draftdomain.Draft{
		Config: billingdomain.BillConfig{Month: "2026-08", TotalBillPayable: 1497},
		Meters: []billingdomain.MeterReading{
			{ID: "m1", Name: "Flat A", Previous: 10, Current: 40},
		},
		UpdatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	result, err := repo.Put(ctx, draft)
	require.NoError(t, err)
	assert.True(t, result.Stored)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft.Config.TotalBillPayable, got.Config.TotalBillPayable)
	assert.Len(t, got.Meters, 1)
}

func TestPutLastWriteWins(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	newer := draftdomain.Draft{
		Config:    billingdomain.BillConfig{Month: "2026-08", TotalBillPayable: 2000},
		UpdatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	stale := draftdomain.Draft{
		Config:    billingdomain.BillConfig{Month: "2026-08", TotalBillPayable: 1000},
		UpdatedAt: time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
	}

	_, err := repo.Put(ctx, newer)
	require.NoError(t, err)

	result, err := repo.Put(ctx, stale)
	require.NoError(t, err)
	assert.False(t, result.Stored)
	assert.InDelta(t, 2000, result.Current.Config.TotalBillPayable, 1e-9)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2000, got.Config.TotalBillPayable, 1e-9)
}

func TestForceOverwritesNewer(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ahead := draftdomain.Draft{
		Config:    billingdomain.BillConfig{Month: "2026-08", TotalBillPayable: 2000},
		UpdatedAt: time.Date(2026, 8, 30, 12, 0, 30, 0, time.UTC),
	}
	_, err := repo.Put(ctx, ahead)
	require.NoError(t, err)

	replacement := draftdomain.Draft{
		Config:    billingdomain.BillConfig{Month: "2026-07", TotalBillPayable: 1497},
		UpdatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Force(ctx, replacement))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-07", got.Config.Month)
	assert.InDelta(t, 1497, got.Config.TotalBillPayable, 1e-9)
}
