package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, StorageMemory, cfg.Storage)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, ConfigPathItems, cfg.CatalogItemsPath)
		assert.Equal(t, ConfigPathLocations, cfg.CatalogLocationsPath)
		assert.Equal(t, ConfigPathItemAliases, cfg.ItemAliasesPath)
		assert.Equal(t, ConfigPathSchemasDir, cfg.SchemasDir)
		assert.Equal(t, int64(0), cfg.RNGSeed)
		assert.Equal(t, 10*time.Minute, cfg.CatalogCacheTTL)
		assert.Equal(t, 0, cfg.MetricsPort)
		assert.False(t, cfg.DevMode)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("STORAGE", "Postgres")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DB_USER", "customuser")
		t.Setenv("DB_PASSWORD", "custompass")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_NAME", "customdb")
		t.Setenv("RNG_SEED", "42")
		t.Setenv("METRICS_PORT", "9090")
		t.Setenv("DEV_MODE", "true")
		t.Setenv("CATALOG_ITEMS_PATH", "/etc/wwwhero/items.json")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "customuser", cfg.DBUser)
		assert.Equal(t, "custompass", cfg.DBPassword)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "customdb", cfg.DBName)
		assert.Equal(t, int64(42), cfg.RNGSeed)
		assert.Equal(t, 9090, cfg.MetricsPort)
		assert.True(t, cfg.DevMode)
		assert.Equal(t, "/etc/wwwhero/items.json", cfg.CatalogItemsPath)
	})

	t.Run("returns error for invalid RNG_SEED", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("RNG_SEED", "lucky")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid RNG_SEED")
	})

	t.Run("rejects invalid enumerations", func(t *testing.T) {
		testCases := []struct {
			name  string
			key   string
			value string
			field string
		}{
			{"unknown storage", "STORAGE", "sqlite", "storage"},
			{"unknown log level", "LOG_LEVEL", "verbose", "loglevel"},
			{"unknown log format", "LOG_FORMAT", "xml", "logformat"},
			{"metrics port out of range", "METRICS_PORT", "70000", "metricsport"},
			{"empty environment", "ENVIRONMENT", "", "environment"},
			{"empty items path", "CATALOG_ITEMS_PATH", "", "catalogitemspath"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv(tc.key, tc.value)

				cfg, err := Load()

				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "invalid configuration")
				assert.Contains(t, err.Error(), tc.field)
			})
		}
	})
}

// TestLoad_DatabasePoolConfig tests that database pool configuration is loaded correctly
func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("loads default database pool configuration", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
		assert.Zero(t, cfg.DBSlowQuery)
	})

	t.Run("loads custom database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")
		t.Setenv("DB_SLOW_QUERY", "250ms")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, cfg.DBSlowQuery)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 1*time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("uses defaults for invalid pool config values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")
		t.Setenv("DB_MAX_CONN_LIFETIME", "100")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})

	t.Run("rejects zero max connections", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_MAX_CONNS", "0")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "dbmaxconns")
	})
}

func TestGetEnvHelpers(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		assert.Equal(t, 42, getEnvAsInt("TEST_INT_VAR", 42))
		t.Setenv("TEST_INT_VAR", "-10")
		assert.Equal(t, -10, getEnvAsInt("TEST_INT_VAR", 42))
		t.Setenv("TEST_INT_VAR", "42.5")
		assert.Equal(t, 42, getEnvAsInt("TEST_INT_VAR", 42))
	})

	t.Run("duration", func(t *testing.T) {
		os.Unsetenv("TEST_DURATION_VAR")
		assert.Equal(t, 5*time.Minute, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		t.Setenv("TEST_DURATION_VAR", "1h30m45s")
		assert.Equal(t, time.Hour+30*time.Minute+45*time.Second, getEnvAsDuration("TEST_DURATION_VAR", 0))
		t.Setenv("TEST_DURATION_VAR", "")
		assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Second))
	})

	t.Run("bool", func(t *testing.T) {
		os.Unsetenv("TEST_BOOL_VAR")
		assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
		t.Setenv("TEST_BOOL_VAR", "0")
		assert.False(t, getEnvAsBool("TEST_BOOL_VAR", true))
		t.Setenv("TEST_BOOL_VAR", "maybe")
		assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
	})
}

func TestWarnings(t *testing.T) {
	cfg := &Config{Storage: StoragePostgres, DBPassword: exampleDBPassword, Environment: "prod", DevMode: true}
	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "DEV_MODE")

	cfg = &Config{Storage: StorageMemory, Environment: "dev"}
	warnings = cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "STORAGE=memory")
}

// TestGetDBConnString verifies database connection string generation
func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "testuser",
		DBPassword: "p@ss:word",
		DBHost:     "testhost",
		DBPort:     "5433",
		DBName:     "testdb",
	}

	assert.Equal(t, "postgres://testuser:p@ss:word@testhost:5433/testdb?sslmode=disable", cfg.GetDBConnString())
}

// clearEnvVars unsets every config key for the duration of the test
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"STORAGE", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "VERSION",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME", "DB_SLOW_QUERY",
		"CATALOG_ITEMS_PATH", "CATALOG_LOCATIONS_PATH", "ITEM_ALIASES_PATH", "SCHEMAS_DIR",
		"CATALOG_CACHE_TTL", "RNG_SEED", "DEV_MODE", "METRICS_PORT",
	}

	for _, key := range envVars {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		}
		os.Unsetenv(key)
	}
}
