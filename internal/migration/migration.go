// Package migration brings the schema up to date at startup. Postgres
// uses the embedded SQL migrations; the sqlite dev driver auto-migrates
// from the gorm models.
package migration

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/metersharelabs/metershare/internal/config"
	ledgerdomain "github.com/metersharelabs/metershare/internal/ledger/domain"
	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
	tenantdomain "github.com/metersharelabs/metershare/internal/tenant/domain"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

func Run(cfg config.Config, db *gorm.DB, log *zap.Logger) error {
	logger := log.Named("migration")

	if cfg.Database.Driver == "postgres" {
		if err := runPostgres(db); err != nil {
			return err
		}
		logger.Info("postgres migrations applied")
		return nil
	}

	if err := db.AutoMigrate(
		&tariffdomain.Tariff{},
		&tenantdomain.Tenant{},
		&ledgerdomain.SavedBill{},
	); err != nil {
		return err
	}
	logger.Info("schema auto-migrated", zap.String("driver", cfg.Database.Driver))
	return nil
}

func runPostgres(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
