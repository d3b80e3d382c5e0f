package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
	"github.com/metersharelabs/metershare/internal/clock"
	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
	"github.com/metersharelabs/metershare/internal/tariff/repository"
)

func serviceAt(t *testing.T, at time.Time) tariffdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tariffdomain.Tariff{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.Fixed(at),
		Repo:  repository.Provide(),
	})
}

func TestUpdateStampsInjectedClock(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := serviceAt(t, at)

	resp, err := svc.Update(context.Background(), tariffdomain.UpdateRequest{
		DemandCharge: 84,
		MeterRent:    10,
		VATRate:      0.05,
		Slabs: []billingdomain.RateSlab{
			{Limit: 75, Rate: 5.26},
			{Limit: 200, Rate: 7.20},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.UpdatedAt.Equal(at))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(at))
}

func TestValidateTariff(t *testing.T) {
	valid := tariffdomain.UpdateRequest{
		DemandCharge: 84,
		MeterRent:    10,
		VATRate:      0.05,
		Slabs: []billingdomain.RateSlab{
			{Limit: 75, Rate: 5.26},
			{Limit: 200, Rate: 7.20},
		},
	}

	tests := []struct {
		name    string
		mutate  func(*tariffdomain.UpdateRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*tariffdomain.UpdateRequest) {}},
		{
			name:    "no slabs",
			mutate:  func(r *tariffdomain.UpdateRequest) { r.Slabs = nil },
			wantErr: tariffdomain.ErrNoSlabs,
		},
		{
			name: "limits not increasing",
			mutate: func(r *tariffdomain.UpdateRequest) {
				r.Slabs = []billingdomain.RateSlab{{Limit: 200, Rate: 5}, {Limit: 75, Rate: 7}}
			},
			wantErr: tariffdomain.ErrSlabOrder,
		},
		{
			name: "zero rate",
			mutate: func(r *tariffdomain.UpdateRequest) {
				r.Slabs = []billingdomain.RateSlab{{Limit: 75, Rate: 0}}
			},
			wantErr: tariffdomain.ErrNonPositiveRate,
		},
		{
			name:    "vat rate out of range",
			mutate:  func(r *tariffdomain.UpdateRequest) { r.VATRate = 1 },
			wantErr: tariffdomain.ErrInvalidVATRate,
		},
		{
			name:    "negative fixed charge",
			mutate:  func(r *tariffdomain.UpdateRequest) { r.DemandCharge = -1 },
			wantErr: tariffdomain.ErrNegativeCharge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validateTariff(req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
