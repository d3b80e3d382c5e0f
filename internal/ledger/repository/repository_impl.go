package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	ledgerdomain "github.com/metersharelabs/metershare/internal/ledger/domain"
)

type repo struct{}

func Provide() ledgerdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, b *ledgerdomain.SavedBill) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO saved_bills (id, saved_at, date_generated, snapshot, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		b.ID,
		b.SavedAt,
		b.DateGenerated,
		b.Snapshot,
		b.CreatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM saved_bills WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ledgerdomain.SavedBill, error) {
	var bill ledgerdomain.SavedBill
	err := db.WithContext(ctx).Raw(
		`SELECT id, saved_at, date_generated, snapshot, created_at
		 FROM saved_bills WHERE id = ?`,
		id,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*ledgerdomain.SavedBill, error) {
	var bills []*ledgerdomain.SavedBill
	err := db.WithContext(ctx).
		Model(&ledgerdomain.SavedBill{}).
		Order("date_generated desc, saved_at desc").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}
