package bootstrap

import (
	"io"
	"log/slog"

	"github.com/osse101/wwwhero/internal/config"
	"github.com/osse101/wwwhero/internal/logger"
)

// SetupLogger installs the default logger from cfg and logs the startup
// banner plus any configuration warnings
func SetupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	addSource := cfg.Environment == logger.EnvironmentDev

	l := logger.InitWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	), w)

	l.Info(LogMsgStarting,
		"storage", cfg.Storage,
		"log_level", cfg.LogLevel,
		"dev_mode", cfg.DevMode)
	l.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"items", cfg.CatalogItemsPath,
		"locations", cfg.CatalogLocationsPath,
		"rng_seed", cfg.RNGSeed,
		"metrics_port", cfg.MetricsPort)

	for _, warning := range cfg.Warnings() {
		l.Warn(LogMsgConfigWarning, "warning", warning)
	}
	return l
}
