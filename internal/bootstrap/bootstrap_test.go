package bootstrap

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/wwwhero/internal/character"
	"github.com/osse101/wwwhero/internal/config"
	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/random"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage:              config.StorageMemory,
		LogLevel:             "debug",
		LogFormat:            "text",
		Environment:          "test",
		Version:              "test",
		CatalogItemsPath:     "../../configs/items.json",
		CatalogLocationsPath: "../../configs/locations.json",
		ItemAliasesPath:      "../../configs/item_aliases.json",
		SchemasDir:           "../../configs/schemas",
		CatalogCacheTTL:      time.Minute,
		RNGSeed:              42,
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupLogger(testConfig(), &buf)

	out := buf.String()
	assert.Contains(t, out, LogMsgStarting)
	assert.Contains(t, out, LogMsgConfigurationLoaded)
	assert.Contains(t, out, "STORAGE=memory")
}

func TestInitializeStorage_UnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Storage = "sqlite"

	_, err := InitializeStorage(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestSyncCatalog(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	storage, err := InitializeStorage(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, storage.Pool)

	cat, err := SyncCatalog(ctx, cfg, storage.Catalog, random.New(1))
	require.NoError(t, err)
	assert.Equal(t, 12, cat.Result.BlueprintsUpserted)
	assert.Equal(t, 6, cat.Result.LocationsUpserted)

	locations, err := cat.Cache.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 6)

	_, ok := cat.Namer.ResolveName("short sword")
	assert.True(t, ok, "synced blueprints are registered with the resolver")

	t.Run("unchanged files are skipped", func(t *testing.T) {
		again, err := SyncCatalog(ctx, cfg, storage.Catalog, random.New(1))
		require.NoError(t, err)
		assert.Zero(t, again.Result.BlueprintsUpserted)
		assert.Zero(t, again.Result.LocationsUpserted)
		assert.Len(t, again.Result.Skipped, 2)
	})

	t.Run("missing catalog file", func(t *testing.T) {
		bad := testConfig()
		bad.CatalogItemsPath = "does-not-exist.json"
		_, err := SyncCatalog(ctx, bad, storage.Catalog, random.New(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFailedToSyncCatalog)
	})
}

func TestInitializeServices_PlaysOneRound(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	storage, err := InitializeStorage(ctx, cfg)
	require.NoError(t, err)
	defer GracefulShutdown(ctx, ShutdownComponents{Storage: storage})

	roller := random.New(uint64(cfg.RNGSeed))
	cat, err := SyncCatalog(ctx, cfg, storage.Catalog, roller)
	require.NoError(t, err)
	svc := InitializeServices(cfg, storage, cat, roller)

	userID := uuid.New()
	hero, err := svc.Characters.Create(ctx, character.CreateRequest{UserID: userID, Name: "Tamsin"}, now)
	require.NoError(t, err)

	res, err := svc.Progression.LevelUp(ctx, hero.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Character.Level)

	_, err = svc.Progression.LevelUp(ctx, hero.ID, now.Add(time.Second))
	assert.ErrorIs(t, err, domain.ErrOnCooldown)

	drop, err := svc.Loot.Search(ctx, hero.ID, now)
	require.NoError(t, err)
	assert.Positive(t, drop.Quantity)

	view, err := svc.Inventory.List(ctx, hero.ID)
	require.NoError(t, err)
	assert.Len(t, view.Entries, 1)
	assert.Equal(t, domain.DefaultInventorySpace+1, view.Inventory.MaxSpace)

	sheet, err := svc.Characters.Sheet(ctx, userID, hero.ID, now)
	require.NoError(t, err)
	require.NotNil(t, sheet.Location)
	assert.Equal(t, "Village", sheet.Location.Name)
	assert.Equal(t, 4, sheet.LevelCooldownSeconds)
}
