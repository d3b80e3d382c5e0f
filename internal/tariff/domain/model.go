// Package domain holds the persisted tariff schedule and its contracts.
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
	ErrNotFound        = errors.New("tariff: no active tariff configured")
	ErrNoSlabs         = errors.New("tariff: at least one slab is required")
	ErrSlabOrder       = errors.New("tariff: slab limits must be strictly increasing")
	ErrNonPositiveRate = errors.New("tariff: slab rates must be positive")
	ErrInvalidVATRate  = errors.New("tariff: vat rate must be in [0, 1)")
	ErrNegativeCharge  = errors.New("tariff: fixed charges must not be negative")
)

// Tariff is one persisted rate schedule revision. Only the newest active
// row feeds calculations; superseded rows are kept for reference.
type Tariff struct {
	ID           snowflake.ID   `gorm:"primaryKey"`
	DemandCharge float64        `gorm:"not null"`
	MeterRent    float64        `gorm:"not null"`
	VATRate      float64        `gorm:"not null"`
	BkashCharge  float64        `gorm:"not null"`
	Slabs        datatypes.JSON `gorm:"not null"`
	Active       bool           `gorm:"not null;index"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
}

func (Tariff) TableName() string { return "tariffs" }

// Config decodes the row into the calculation model.
func (t *Tariff) Config() (billingdomain.TariffConfig, error) {
	var slabs []billingdomain.RateSlab
	if len(t.Slabs) > 0 {
		if err := json.Unmarshal(t.Slabs, &slabs); err != nil {
			return billingdomain.TariffConfig{}, err
		}
	}
	return billingdomain.TariffConfig{
		DemandCharge: t.DemandCharge,
		MeterRent:    t.MeterRent,
		VATRate:      t.VATRate,
		BkashCharge:  t.BkashCharge,
		Slabs:        slabs,
	}, nil
}

type UpdateRequest struct {
	DemandCharge float64                  `json:"demand_charge"`
	MeterRent    float64                  `json:"meter_rent"`
	VATRate      float64                  `json:"vat_rate"`
	BkashCharge  float64                  `json:"bkash_charge"`
	Slabs        []billingdomain.RateSlab `json:"slabs"`
}

type Response struct {
	ID           string                   `json:"id"`
	DemandCharge float64                  `json:"demand_charge"`
	MeterRent    float64                  `json:"meter_rent"`
	VATRate      float64                  `json:"vat_rate"`
	BkashCharge  float64                  `json:"bkash_charge"`
	Slabs        []billingdomain.RateSlab `json:"slabs"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tariff *Tariff) error
	DeactivateAll(ctx context.Context, db *gorm.DB, at time.Time) error
	FindActive(ctx context.Context, db *gorm.DB) (*Tariff, error)
}

type Service interface {
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Get(ctx context.Context) (*Response, error)
	// ActiveConfig returns the calculation model of the active tariff.
	ActiveConfig(ctx context.Context) (billingdomain.TariffConfig, error)
}
