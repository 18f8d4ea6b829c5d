package main

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// app is the wired application shared by the commands that touch the books.
type app struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	metrics  *metrics.Metrics
	services *portssvc.ServiceContainer
}

func (a *app) Close() {
	database.ClosePgxPool(a.pool)
}

// bootstrap loads config, optionally migrates, and wires repositories and services.
func bootstrap(ctx context.Context, logger *slog.Logger, runMigrations bool) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if runMigrations {
		logger.Info("Running database migrations...")
		if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
			return nil, err
		}
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		Ping:     cfg.EnableDBCheck,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	m := metrics.NewMetrics()
	repos := pgsql.NewRepositoryProvider(pool)
	return &app{
		cfg:      cfg,
		pool:     pool,
		metrics:  m,
		services: services.NewServiceContainer(cfg, repos, m),
	}, nil
}
