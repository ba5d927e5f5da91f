package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/wwwhero/internal/config"
	"github.com/osse101/wwwhero/internal/database"
	"github.com/osse101/wwwhero/internal/database/memory"
	"github.com/osse101/wwwhero/internal/database/postgres"
	"github.com/osse101/wwwhero/internal/repository"
)

// Storage holds the repository implementations used by the application.
// Pool is nil for the in-memory backend.
type Storage struct {
	Characters repository.Character
	Inventory  repository.Inventory
	Catalog    repository.Catalog
	Pool       *pgxpool.Pool
}

// InitializeStorage opens the configured backend. For PostgreSQL it
// connects and applies pending migrations.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Info(LogMsgStorageMemory)
		store := memory.NewStore()
		return &Storage{Characters: store, Inventory: store, Catalog: store}, nil

	case config.StoragePostgres:
		slog.Info(LogMsgStoragePostgres, "host", cfg.DBHost, "db", cfg.DBName)
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
			SlowQuery:       cfg.DBSlowQuery,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConnect, err)
		}
		applied, err := database.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied, "count", applied)

		store := postgres.NewStore(pool)
		return &Storage{Characters: store, Inventory: store, Catalog: store, Pool: pool}, nil
	}
	return nil, fmt.Errorf(ErrMsgUnknownStorage, cfg.Storage)
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
