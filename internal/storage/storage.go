// Package storage opens the backend named in the configuration and exposes
// it as the repository set the services depend on.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/config"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/storage/dynamo"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/storage/postgres"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/storage/sqlite"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/migrations"
)

const connectTimeout = 5 * time.Second

// Backend is an open store.
type Backend struct {
	Driver       string
	Reservations app.ReservationRepository
	Conferences  app.ConferenceRepository
	Availability app.AvailabilityRepository
	Admin        app.AdminRepository

	migrate func(ctx context.Context) ([]string, error)
	close   func() error
}

// Open connects to the configured driver. Schema changes are left to
// Migrate, except for SQLite which upgrades its file on open.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseURL, logger)
	case config.DriverSQLite:
		return openSQLite(cfg.SQLitePath, logger)
	case config.DriverDynamoDB:
		return openDynamo(ctx, cfg.DynamoDB, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Migrate brings the backend's schema up to date and returns what it applied.
func (b *Backend) Migrate(ctx context.Context) ([]string, error) {
	if b.migrate == nil {
		return nil, nil
	}
	return b.migrate(ctx)
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func openPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*Backend, error) {
	startupCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(startupCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	logger.Info("storage ready", "driver", config.DriverPostgres)

	return &Backend{
		Driver:       config.DriverPostgres,
		Reservations: postgres.NewReservationRepository(pool),
		Conferences:  postgres.NewConferenceRepository(pool),
		Availability: postgres.NewAvailabilityRepository(pool),
		Admin:        postgres.NewAdminRepository(pool),
		migrate: func(ctx context.Context) ([]string, error) {
			return migrations.Apply(ctx, pool)
		},
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openSQLite(path string, logger *slog.Logger) (*Backend, error) {
	st, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", "driver", config.DriverSQLite, "path", path)

	return &Backend{
		Driver:       config.DriverSQLite,
		Reservations: st,
		Conferences:  st,
		Availability: st,
		Admin:        st,
		close:        st.Close,
	}, nil
}

func openDynamo(ctx context.Context, cfg config.DynamoConfig, logger *slog.Logger) (*Backend, error) {
	client, err := dynamo.NewClient(ctx, dynamo.ClientOptions{
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	st := dynamo.NewStore(client, cfg.Table)
	logger.Info("storage ready", "driver", config.DriverDynamoDB, "table", cfg.Table, "endpoint", cfg.Endpoint)

	return &Backend{
		Driver:       config.DriverDynamoDB,
		Reservations: st,
		Conferences:  st,
		Availability: st,
		Admin:        st,
		migrate: func(ctx context.Context) ([]string, error) {
			return nil, st.EnsureTable(ctx)
		},
	}, nil
}
