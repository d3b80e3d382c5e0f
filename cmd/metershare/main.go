package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/metersharelabs/metershare/internal/billing"
	"github.com/metersharelabs/metershare/internal/clock"
	"github.com/metersharelabs/metershare/internal/config"
	"github.com/metersharelabs/metershare/internal/draft"
	"github.com/metersharelabs/metershare/internal/ledger"
	"github.com/metersharelabs/metershare/internal/migration"
	"github.com/metersharelabs/metershare/internal/observability"
	"github.com/metersharelabs/metershare/internal/redis"
	"github.com/metersharelabs/metershare/internal/server"
	"github.com/metersharelabs/metershare/internal/tariff"
	"github.com/metersharelabs/metershare/internal/tenant"
	"github.com/metersharelabs/metershare/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "metershare",
		Short:   "Sub-meter electricity bill splitter",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		migration.Module,

		tariff.Module,
		tenant.Module,
		draft.Module,
		billing.Module,
		ledger.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
