// Package domain models the active working session: the bill inputs a
// user is currently editing, before any snapshot is saved.
package domain

import (
	"context"
	"time"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
)

// Draft is the current editing state. It lives in the session store, not
// the database; a SavedBill snapshot is the durable form. UpdatedAt is
// supplied by the caller and drives last-write-wins conflict resolution:
// a put carrying an older timestamp than the stored draft is dropped.
type Draft struct {
	Config    billingdomain.BillConfig     `json:"config"`
	MainMeter billingdomain.MeterReading   `json:"main_meter"`
	Meters    []billingdomain.MeterReading `json:"meters"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

// PutResult reports whether a write won the last-write-wins comparison
// and echoes the draft that is now current either way.
type PutResult struct {
	Stored  bool  `json:"stored"`
	Current Draft `json:"current"`
}

type Repository interface {
	Get(ctx context.Context) (*Draft, error)
	// Put stores the draft unless a newer one is already present.
	Put(ctx context.Context, draft Draft) (PutResult, error)
	// Force stores the draft without the timestamp comparison. Stored
	// timestamps are caller-supplied and may be ahead of server time, so
	// an unconditional overwrite cannot go through Put.
	Force(ctx context.Context, draft Draft) error
}

type Service interface {
	Get(ctx context.Context) (*Draft, error)
	Put(ctx context.Context, draft Draft) (PutResult, error)
	// Replace overwrites the draft unconditionally, stamping it with the
	// given time. Used when a saved bill is loaded back into the session.
	Replace(ctx context.Context, draft Draft, at time.Time) error
}
