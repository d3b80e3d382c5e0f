// Package domain holds the tenant picklist model. Tenants label meter
// readings but have a lifecycle of their own, independent from meters
// and saved bills.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("tenant: not found")
	ErrInvalidID   = errors.New("tenant: invalid id")
	ErrInvalidName = errors.New("tenant: name is required")
)

type Tenant struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null"`
	Phone     *string      `gorm:"type:text"`
	Email     *string      `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null"`
	UpdatedAt time.Time    `gorm:"not null"`
}

func (Tenant) TableName() string { return "tenants" }

type CreateRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type UpdateRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	Update(ctx context.Context, db *gorm.DB, tenant *Tenant) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Tenant, error)
	List(ctx context.Context, db *gorm.DB) ([]*Tenant, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}
