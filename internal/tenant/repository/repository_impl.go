package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	tenantdomain "github.com/metersharelabs/metershare/internal/tenant/domain"
)

type repo struct{}

func Provide() tenantdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, t *tenantdomain.Tenant) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tenants (id, name, phone, email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.Phone,
		t.Email,
		t.CreatedAt,
		t.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, t *tenantdomain.Tenant) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tenants SET name = ?, phone = ?, email = ?, updated_at = ? WHERE id = ?`,
		t.Name,
		t.Phone,
		t.Email,
		t.UpdatedAt,
		t.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM tenants WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*tenantdomain.Tenant, error) {
	var tenant tenantdomain.Tenant
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, phone, email, created_at, updated_at FROM tenants WHERE id = ?`,
		id,
	).Scan(&tenant).Error
	if err != nil {
		return nil, err
	}
	if tenant.ID == 0 {
		return nil, nil
	}
	return &tenant, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*tenantdomain.Tenant, error) {
	var tenants []*tenantdomain.Tenant
	err := db.WithContext(ctx).
		Model(&tenantdomain.Tenant{}).
		Order("name asc, id asc").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}
