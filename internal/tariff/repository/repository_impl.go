package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
)

type repo struct{}

func Provide() tariffdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, t *tariffdomain.Tariff) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tariffs (id, demand_charge, meter_rent, vat_rate, bkash_charge, slabs, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.DemandCharge,
		t.MeterRent,
		t.VATRate,
		t.BkashCharge,
		t.Slabs,
		t.Active,
		t.CreatedAt,
		t.UpdatedAt,
	).Error
}

func (r *repo) DeactivateAll(ctx context.Context, db *gorm.DB, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tariffs SET active = ?, updated_at = ? WHERE active = ?`,
		false,
		at,
		true,
	).Error
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB) (*tariffdomain.Tariff, error) {
	var tariff tariffdomain.Tariff
	err := db.WithContext(ctx).Raw(
		`SELECT id, demand_charge, meter_rent, vat_rate, bkash_charge, slabs, active, created_at, updated_at
		 FROM tariffs WHERE active = ? ORDER BY created_at DESC LIMIT 1`,
		true,
	).Scan(&tariff).Error
	if err != nil {
		return nil, err
	}
	if tariff.ID == 0 {
		return nil, nil
	}
	return &tariff, nil
}
