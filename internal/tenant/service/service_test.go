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

	"github.com/metersharelabs/metershare/internal/clock"
	tenantdomain "github.com/metersharelabs/metershare/internal/tenant/domain"
	"github.com/metersharelabs/metershare/internal/tenant/repository"
)

func serviceAt(t *testing.T, at time.Time) tenantdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tenantdomain.Tenant{}))

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

func TestCreateStampsInjectedClock(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := serviceAt(t, at)

	phone := "01700000000"
	resp, err := svc.Create(context.Background(), tenantdomain.CreateRequest{
		Name:  "Flat A",
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.True(t, resp.CreatedAt.Equal(at))
	assert.True(t, resp.UpdatedAt.Equal(at))
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := serviceAt(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))

	_, err := svc.Create(context.Background(), tenantdomain.CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, tenantdomain.ErrInvalidName)
}
