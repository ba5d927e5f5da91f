// Package catalog loads the read-only reference data (item blueprints and
// locations) from JSON files into the store and serves it through a cache.
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/osse101/wwwhero/internal/domain"
	"github.com/osse101/wwwhero/internal/logger"
	"github.com/osse101/wwwhero/internal/metrics"
	"github.com/osse101/wwwhero/internal/repository"
	"github.com/osse101/wwwhero/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ItemsConfig is the JSON layout of the blueprint catalog
type ItemsConfig struct {
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Blueprints  []BlueprintDef `json:"blueprints"`
}

// BlueprintDef is a single blueprint definition
type BlueprintDef struct {
	Name         string          `json:"name"`
	ItemType     domain.ItemType `json:"item_type"`
	SlotType     domain.SlotType `json:"slot_type,omitempty"`
	IsConsumable bool            `json:"is_consumable"`
	IsStackable  bool            `json:"is_stackable"`
	IsDroppable  bool            `json:"is_droppable"`
	BaseCost     int             `json:"base_cost"`
}

// LocationsConfig is the JSON layout of the location list
type LocationsConfig struct {
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Locations   []LocationDef `json:"locations"`
}

// LocationDef is a single location definition. IsActive defaults to true.
type LocationDef struct {
	Name         string              `json:"name"`
	MinLevel     int                 `json:"min_level"`
	LocationType domain.LocationType `json:"location_type"`
	IsActive     *bool               `json:"is_active,omitempty"`
}

// Loader reads, validates and syncs reference data
type Loader interface {
	LoadItems(path string) (*ItemsConfig, error)
	LoadLocations(path string) (*LocationsConfig, error)
	ValidateItems(config *ItemsConfig) error
	ValidateLocations(config *LocationsConfig) error

	// Sync upserts both files into repo, skipping files whose hash matches
	// the last successful sync
	Sync(ctx context.Context, repo repository.Catalog, itemsPath, locationsPath string) (*SyncResult, error)
}

// SyncResult contains the outcome of a sync
type SyncResult struct {
	BlueprintsUpserted int
	LocationsUpserted  int
	Skipped            []string
}

type loader struct {
	schemas validation.SchemaValidator
	clock   func() time.Time
}

// NewLoader creates a Loader validating against schemas
func NewLoader(schemas validation.SchemaValidator) Loader {
	return &loader{schemas: schemas, clock: time.Now}
}

func (l *loader) LoadItems(path string) (*ItemsConfig, error) {
	var config ItemsConfig
	if err := l.load(path, ItemsSchemaFile, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (l *loader) LoadLocations(path string) (*LocationsConfig, error) {
	var config LocationsConfig
	if err := l.load(path, LocationsSchemaFile, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (l *loader) load(path, schemaFile string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}
	return l.decode(path, schemaFile, data, target)
}

func (l *loader) decode(path, schemaFile string, data []byte, target any) error {
	if err := l.schemas.ValidateBytes(data, schemaFile); err != nil {
		return fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf(ErrMsgParseConfigFailed, path, err)
	}
	return nil
}

func (l *loader) ValidateItems(config *ItemsConfig) error {
	if config == nil || len(config.Blueprints) == 0 {
		return fmt.Errorf(ErrFmtNothingDefined, ErrInvalidConfig, "blueprints")
	}

	names := make(map[string]bool, len(config.Blueprints))
	var gold string
	for i, def := range config.Blueprints {
		if strings.TrimSpace(def.Name) == "" {
			return fmt.Errorf(ErrFmtEmptyName, ErrInvalidConfig, i)
		}
		key := strings.ToLower(def.Name)
		if names[key] {
			return fmt.Errorf(ErrFmtDuplicateName, ErrDuplicateName, def.Name)
		}
		names[key] = true

		if !def.ItemType.Valid() {
			return fmt.Errorf(ErrFmtUnknownItemType, ErrInvalidConfig, def.Name, def.ItemType)
		}
		if def.BaseCost < 0 {
			return fmt.Errorf(ErrFmtNegativeBaseCost, ErrInvalidConfig, def.Name)
		}
		if def.ItemType == domain.ItemTypeGold {
			if gold != "" {
				return fmt.Errorf(ErrFmtMultipleGold, ErrInvalidConfig, gold, def.Name)
			}
			gold = def.Name
		}
	}

	if gold == "" {
		logger.FromContext(context.Background()).Warn(LogMsgNoGoldBlueprint)
	}
	return nil
}

func (l *loader) ValidateLocations(config *LocationsConfig) error {
	if config == nil || len(config.Locations) == 0 {
		return fmt.Errorf(ErrFmtNothingDefined, ErrInvalidConfig, "locations")
	}

	names := make(map[string]bool, len(config.Locations))
	for i, def := range config.Locations {
		if strings.TrimSpace(def.Name) == "" {
			return fmt.Errorf(ErrFmtEmptyName, ErrInvalidConfig, i)
		}
		key := strings.ToLower(def.Name)
		if names[key] {
			return fmt.Errorf(ErrFmtDuplicateName, ErrDuplicateName, def.Name)
		}
		names[key] = true

		if def.MinLevel < 0 {
			return fmt.Errorf(ErrFmtNegativeMinLevel, ErrInvalidConfig, def.Name)
		}
	}
	return nil
}

func (l *loader) Sync(ctx context.Context, repo repository.Catalog, itemsPath, locationsPath string) (*SyncResult, error) {
	log := logger.FromContext(ctx)
	result := &SyncResult{}

	// Blueprints first: nothing references locations at sync time
	itemsData, changed, err := l.changedFile(ctx, repo, itemsPath, ConfigNameItems)
	if err != nil {
		return nil, err
	}
	if changed {
		var config ItemsConfig
		if err := l.decode(itemsPath, ItemsSchemaFile, itemsData, &config); err != nil {
			return nil, err
		}
		if err := l.ValidateItems(&config); err != nil {
			return nil, err
		}
		for _, def := range config.Blueprints {
			bp := def.toDomain()
			if err := repo.UpsertBlueprint(ctx, &bp); err != nil {
				return nil, fmt.Errorf(ErrMsgUpsertBlueprint, def.Name, err)
			}
			result.BlueprintsUpserted++
		}
		l.recordSync(ctx, repo, ConfigNameItems, itemsData)
	} else {
		result.Skipped = append(result.Skipped, ConfigNameItems)
	}

	locationsData, changed, err := l.changedFile(ctx, repo, locationsPath, ConfigNameLocations)
	if err != nil {
		return nil, err
	}
	if changed {
		var config LocationsConfig
		if err := l.decode(locationsPath, LocationsSchemaFile, locationsData, &config); err != nil {
			return nil, err
		}
		if err := l.ValidateLocations(&config); err != nil {
			return nil, err
		}
		for _, def := range config.Locations {
			loc := def.toDomain()
			if err := repo.UpsertLocation(ctx, &loc); err != nil {
				return nil, fmt.Errorf(ErrMsgUpsertLocation, def.Name, err)
			}
			result.LocationsUpserted++
		}
		l.recordSync(ctx, repo, ConfigNameLocations, locationsData)
	} else {
		result.Skipped = append(result.Skipped, ConfigNameLocations)
	}

	log.Info(LogMsgSyncCompleted,
		"blueprints", result.BlueprintsUpserted,
		"locations", result.LocationsUpserted,
		"skipped", result.Skipped)
	return result, nil
}

// changedFile reads path and reports whether its hash differs from the last sync
func (l *loader) changedFile(ctx context.Context, repo repository.Catalog, path, configName string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	meta, err := repo.GetSyncMetadata(ctx, configName)
	if err != nil {
		return nil, false, fmt.Errorf(ErrMsgCheckFileFailed, configName, err)
	}
	if meta != nil && meta.FileHash == fileHash(data) {
		logger.FromContext(ctx).Info(LogMsgConfigUnchanged, "path", path)
		metrics.CatalogSyncSkipped.WithLabelValues(configName).Inc()
		return data, false, nil
	}
	return data, true, nil
}

// recordSync stores the hash of a synced file. Failure only costs a re-sync next start.
func (l *loader) recordSync(ctx context.Context, repo repository.Catalog, configName string, data []byte) {
	err := repo.UpsertSyncMetadata(ctx, &domain.SyncMetadata{
		ConfigName:   configName,
		LastSyncTime: l.clock(),
		FileHash:     fileHash(data),
	})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUpdateMetadataFailed, "config", configName, "error", err)
	}
}

func fileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (d BlueprintDef) toDomain() domain.ItemBlueprint {
	slot := d.SlotType
	if slot == "" {
		slot = domain.SlotNone
	}
	return domain.ItemBlueprint{
		Name:         d.Name,
		ItemType:     d.ItemType,
		SlotType:     slot,
		IsConsumable: d.IsConsumable,
		IsStackable:  d.IsStackable,
		IsDroppable:  d.IsDroppable,
		BaseCost:     d.BaseCost,
	}
}

func (d LocationDef) toDomain() domain.Location {
	active := true
	if d.IsActive != nil {
		active = *d.IsActive
	}
	return domain.Location{
		Name:     d.Name,
		MinLevel: d.MinLevel,
		Type:     d.LocationType,
		IsActive: active,
	}
}
