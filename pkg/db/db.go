// Package db opens the gorm handle for the configured driver. Postgres
// runs production; the sqlite driver is pure Go and covers development
// and tests without cgo.
package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/metersharelabs/metershare/internal/config"
)

func New(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		handle *gorm.DB
		err    error
	)
	switch cfg.Database.Driver {
	case "postgres":
		handle, err = gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	case "sqlite":
		handle, err = gorm.Open(sqlite.Open(cfg.Database.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Named("db").Info("database opened", zap.String("driver", cfg.Database.Driver))
	return handle, nil
}

var Module = fx.Module("db",
	fx.Provide(New),
)
