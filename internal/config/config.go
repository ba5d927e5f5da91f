package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/wwwhero/internal/validation"
)

// Config holds the application configuration
type Config struct {
	Storage     string `validate:"oneof=memory postgres"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`
	Environment string `validate:"required"`
	Version     string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	// DBSlowQuery of 0 disables slow query logging
	DBSlowQuery time.Duration `validate:"min=0"`

	CatalogItemsPath     string        `validate:"required"`
	CatalogLocationsPath string        `validate:"required"`
	ItemAliasesPath      string        `validate:"required"`
	SchemasDir           string        `validate:"required"`
	CatalogCacheTTL      time.Duration `validate:"min=0"`

	// RNGSeed of 0 seeds the roll provider from the clock
	RNGSeed int64
	// DevMode bypasses cooldown gates
	DevMode bool
	// MetricsPort of 0 disables the metrics listener
	MetricsPort int `validate:"min=0,max=65535"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		Storage:     strings.ToLower(getEnv("STORAGE", StorageMemory)),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "wwwhero"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBSlowQuery:       getEnvAsDuration("DB_SLOW_QUERY", 0),

		CatalogItemsPath:     getEnv("CATALOG_ITEMS_PATH", ConfigPathItems),
		CatalogLocationsPath: getEnv("CATALOG_LOCATIONS_PATH", ConfigPathLocations),
		ItemAliasesPath:      getEnv("ITEM_ALIASES_PATH", ConfigPathItemAliases),
		SchemasDir:           getEnv("SCHEMAS_DIR", ConfigPathSchemasDir),
		CatalogCacheTTL:      getEnvAsDuration("CATALOG_CACHE_TTL", 10*time.Minute),

		DevMode:     getEnvAsBool("DEV_MODE", false),
		MetricsPort: getEnvAsInt("METRICS_PORT", 0),
	}

	seed, err := strconv.ParseInt(getEnv("RNG_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RNG_SEED value: %w", err)
	}
	cfg.RNGSeed = seed

	if err := validation.Default().ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", validation.Summary(err))
	}

	return cfg, nil
}

// Warnings reports non-fatal configuration problems worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Storage == StoragePostgres && c.DBPassword == exampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.DevMode && c.Environment == "prod" {
		warnings = append(warnings, "DEV_MODE is enabled in prod - cooldowns are not enforced")
	}
	if c.Storage == StorageMemory {
		warnings = append(warnings, "STORAGE=memory - progress is lost on exit")
	}
	return warnings
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
