// Package domain holds the saved-bill history model. Saved bills are
// immutable snapshots: created by explicit user action, never updated in
// place, deleted only on request. Corrections are delete plus re-save.
package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	billingdomain "github.com/metersharelabs/metershare/internal/billing/domain"
)

var (
	ErrNotFound  = errors.New("ledger: saved bill not found")
	ErrInvalidID = errors.New("ledger: invalid id")
	ErrNoDraft   = errors.New("ledger: no draft to save")
)

// BillSnapshot is the deep copy of the working state frozen at save time.
type BillSnapshot struct {
	Config    billingdomain.BillConfig     `json:"config"`
	MainMeter billingdomain.MeterReading   `json:"main_meter"`
	Meters    []billingdomain.MeterReading `json:"meters"`
}

// SavedBill is one history row. DateGenerated is denormalized out of the
// snapshot so the display ordering can be done in SQL.
type SavedBill struct {
	ID            snowflake.ID   `gorm:"primaryKey"`
	SavedAt       time.Time      `gorm:"not null;index"`
	DateGenerated time.Time      `gorm:"not null;index"`
	Snapshot      datatypes.JSON `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"not null"`
}

func (SavedBill) TableName() string { return "saved_bills" }

// Decode unmarshals the frozen snapshot.
func (b *SavedBill) Decode() (BillSnapshot, error) {
	var snap BillSnapshot
	if len(b.Snapshot) == 0 {
		return snap, nil
	}
	err := json.Unmarshal(b.Snapshot, &snap)
	return snap, err
}

type Response struct {
	ID        string       `json:"id"`
	SavedAt   time.Time    `json:"saved_at"`
	Snapshot  BillSnapshot `json:"snapshot"`
	TotalBill float64      `json:"total_bill"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bill *SavedBill) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SavedBill, error)
	// List returns bills ordered by date generated desc, then saved-at desc.
	List(ctx context.Context, db *gorm.DB) ([]*SavedBill, error)
}

type Service interface {
	// Save freezes the current draft into an immutable snapshot.
	Save(ctx context.Context) (*Response, error)
	// Remove deletes by id; removing an absent bill is a no-op.
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]Response, error)
	// LoadIntoDraft copies a snapshot back into the working session
	// without mutating the stored snapshot.
	LoadIntoDraft(ctx context.Context, id string) (*Response, error)
}
