package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
	"github.com/metersharelabs/metershare/internal/clock"
	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
	draftrepo "github.com/metersharelabs/metershare/internal/draft/repository"
	draftservice "github.com/metersharelabs/metershare/internal/draft/service"
	ledgerdomain "github.com/metersharelabs/metershare/internal/ledger/domain"
	"github.com/metersharelabs/metershare/internal/ledger/repository"
)

type fixture struct {
	db     *gorm.DB
	genID  *snowflake.Node
	drafts draftdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ledgerdomain.SavedBill{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	drafts := draftservice.New(draftservice.Params{
		Log:  zap.NewNop(),
		Repo: draftrepo.Provide(client),
	})

	return &fixture{db: db, genID: node, drafts: drafts}
}

func (f *fixture) serviceAt(at time.Time) ledgerdomain.Service {
	return New(Params{
		DB:     f.db,
		Log:    zap.NewNop(),
		GenID:  f.genID,
		Clock:  clock.Fixed(at),
		Repo:   repository.Provide(),
		Drafts: f.drafts,
	})
}

func (f *fixture) putDraft(t *testing.T, month string, generated time.Time, total float64) {
	t.Helper()
	_, err := f.drafts.Put(context.Background(), draftdomain.Draft{
		Config: billingdomain.BillConfig{
			Month:            month,
			DateGenerated:    generated,
			TotalBillPayable: total,
		},
		MainMeter: billingdomain.MeterReading{ID: "main", Previous: 0, Current: 220},
		Meters: []billingdomain.MeterReading{
			{ID: "m1", Name: "Flat A", Previous: 0, Current: 100},
			{ID: "m2", Name: "Flat B", Previous: 0, Current: 105},
		},
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestSaveWithoutDraft(t *testing.T) {
	f := newFixture(t)
	svc := f.serviceAt(time.Now().UTC())

	_, err := svc.Save(context.Background())
	assert.ErrorIs(t, err, ledgerdomain.ErrNoDraft)
}

func TestSaveAndListOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	july := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	august := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	f.putDraft(t, "2026-07", july, 1400)
	_, err := f.serviceAt(july.Add(24 * time.Hour)).Save(ctx)
	require.NoError(t, err)

	f.putDraft(t, "2026-08", august, 1497)
	first, err := f.serviceAt(august.Add(24 * time.Hour)).Save(ctx)
	require.NoError(t, err)

	// Same generated date saved later wins the tie on saved_at.
	f.putDraft(t, "2026-08", august, 1600)
	second, err := f.serviceAt(august.Add(48 * time.Hour)).Save(ctx)
	require.NoError(t, err)

	list, err := f.serviceAt(time.Now().UTC()).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "2026-07", list[2].Snapshot.Config.Month)
	assert.InDelta(t, 1600, list[0].TotalBill, 1e-9)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	f := newFixture(t)
	svc := f.serviceAt(time.Now().UTC())

	err := svc.Remove(context.Background(), f.genID.Generate().String())
	assert.NoError(t, err)
}

func TestLoadIntoDraftDoesNotMutateSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	generated := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	f.putDraft(t, "2026-08", generated, 1497)

	svc := f.serviceAt(generated.Add(24 * time.Hour))
	saved, err := svc.Save(ctx)
	require.NoError(t, err)

	// Clobber the draft, then restore it from the snapshot.
	f.putDraft(t, "2026-09", generated.AddDate(0, 1, 0), 9999)

	restored, err := f.serviceAt(time.Now().UTC()).LoadIntoDraft(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, restored.ID)

	draft, err := f.drafts.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "2026-08", draft.Config.Month)
	assert.InDelta(t, 1497, draft.Config.TotalBillPayable, 1e-9)
	assert.Len(t, draft.Meters, 2)

	// The stored snapshot itself is untouched.
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.InDelta(t, 1497, list[0].TotalBill, 1e-9)
}
