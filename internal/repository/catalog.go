package repository

import (
	"context"

	"github.com/osse101/wwwhero/internal/domain"
)

// Catalog defines the interface for read-only reference data.
// The engine only reads it; the Upsert methods are used by the catalog sync at startup.
type Catalog interface {
	ListBlueprints(ctx context.Context) ([]domain.ItemBlueprint, error)
	GetBlueprint(ctx context.Context, blueprintID int64) (*domain.ItemBlueprint, error)
	UpsertBlueprint(ctx context.Context, blueprint *domain.ItemBlueprint) error

	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, locationID int64) (*domain.Location, error)
	UpsertLocation(ctx context.Context, location *domain.Location) error

	GetSyncMetadata(ctx context.Context, configName string) (*domain.SyncMetadata, error)
	UpsertSyncMetadata(ctx context.Context, metadata *domain.SyncMetadata) error
}
