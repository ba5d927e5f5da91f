package bootstrap

import "time"

// ShutdownTimeout bounds the graceful shutdown of the metrics server
const ShutdownTimeout = 5 * time.Second

// Log messages for startup
const (
	LogMsgStarting            = "Starting wwwhero"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgStorageMemory       = "Using in-memory storage"
	LogMsgStoragePostgres     = "Using PostgreSQL storage"
	LogMsgMigrationsApplied   = "Database migrations applied"
	LogMsgSyncingCatalog      = "Syncing catalog from JSON config..."
	LogMsgCatalogSynced       = "Catalog synced successfully"
	LogMsgCatalogUnchanged    = "Catalog config unchanged, sync skipped"
)

// Log messages for shutdown
const (
	LogMsgShuttingDown         = "Shutting down..."
	LogMsgServerForcedShutdown = "Metrics server forced to shutdown"
	LogMsgStopped              = "Stopped"
)

// Error messages
const (
	ErrMsgFailedToConnect     = "failed to connect to database"
	ErrMsgFailedToMigrate     = "failed to migrate database"
	ErrMsgFailedToSyncCatalog = "failed to sync catalog"
	ErrMsgFailedToLoadCatalog = "failed to load catalog"
	ErrMsgFailedToInitNaming  = "failed to initialize naming resolver"
	ErrMsgUnknownStorage      = "unknown storage backend %q"
)
