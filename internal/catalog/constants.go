package catalog

// Schema files the reference data is validated against
const (
	ItemsSchemaFile     = "items.schema.json"
	LocationsSchemaFile = "locations.schema.json"
)

// Sync metadata keys
const (
	ConfigNameItems     = "items.json"
	ConfigNameLocations = "locations.json"
)

// Cache sizing
const (
	DefaultCacheSize = 512

	// listKey is the single cache key for whole-catalog listings
	listKey = "all"
)

// ==================== Error Messages ====================

const (
	ErrMsgReadConfigFileFailed = "failed to read config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse %s: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
	ErrMsgCheckFileFailed      = "failed to check if %s changed: %w"
	ErrMsgUpsertBlueprint      = "failed to upsert blueprint '%s': %w"
	ErrMsgUpsertLocation       = "failed to upsert location '%s': %w"
	ErrMsgListBlueprintsFailed = "failed to list blueprints: %w"
	ErrMsgListLocationsFailed  = "failed to list locations: %w"
)

// Format strings for validation failures
const (
	ErrFmtEmptyName        = "%w: entry at index %d has empty name"
	ErrFmtDuplicateName    = "%w: '%s'"
	ErrFmtUnknownItemType  = "%w: blueprint '%s' has unknown item_type %q"
	ErrFmtNegativeBaseCost = "%w: blueprint '%s' has negative base_cost"
	ErrFmtMultipleGold     = "%w: more than one GOLD blueprint ('%s', '%s')"
	ErrFmtNegativeMinLevel = "%w: location '%s' has negative min_level"
	ErrFmtNothingDefined   = "%w: no %s defined"
)

// ==================== Log Messages ====================

const (
	LogMsgConfigUnchanged      = "Config file unchanged, skipping sync"
	LogMsgSyncCompleted        = "Catalog sync completed"
	LogMsgUpdateMetadataFailed = "Failed to update sync metadata"
	LogMsgNoGoldBlueprint      = "Catalog has no GOLD blueprint; duplicate quest rolls will fail"
)
