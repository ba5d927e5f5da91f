package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/wwwhero/internal/catalog"
	"github.com/osse101/wwwhero/internal/config"
	"github.com/osse101/wwwhero/internal/naming"
	"github.com/osse101/wwwhero/internal/random"
	"github.com/osse101/wwwhero/internal/repository"
	"github.com/osse101/wwwhero/internal/validation"
)

// Catalog is the synced reference data plus the item naming resolver
type Catalog struct {
	Cache  *catalog.Cache
	Namer  naming.Resolver
	Result *catalog.SyncResult
}

// SyncCatalog validates the JSON catalog files, syncs them into repo and
// returns a read-through cache over it. Unchanged files are skipped by hash.
func SyncCatalog(ctx context.Context, cfg *config.Config, repo repository.Catalog, roller random.Source) (*Catalog, error) {
	slog.Info(LogMsgSyncingCatalog)

	schemas := validation.NewSchemaValidator(os.DirFS(cfg.SchemasDir))
	loader := catalog.NewLoader(schemas)

	result, err := loader.Sync(ctx, repo, cfg.CatalogItemsPath, cfg.CatalogLocationsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToSyncCatalog, err)
	}
	if result.BlueprintsUpserted > 0 || result.LocationsUpserted > 0 {
		slog.Info(LogMsgCatalogSynced,
			"blueprints", result.BlueprintsUpserted,
			"locations", result.LocationsUpserted,
			"skipped", result.Skipped)
	} else {
		slog.Info(LogMsgCatalogUnchanged)
	}

	cache := catalog.NewCache(repo, catalog.DefaultCacheSize, cfg.CatalogCacheTTL)

	namer, err := naming.NewResolver(cfg.ItemAliasesPath, schemas, roller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInitNaming, err)
	}
	blueprints, err := cache.ListBlueprints(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadCatalog, err)
	}
	for _, bp := range blueprints {
		namer.RegisterBlueprint(bp)
	}

	return &Catalog{Cache: cache, Namer: namer, Result: result}, nil
}
