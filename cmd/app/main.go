package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/wwwhero/internal/bootstrap"
	"github.com/osse101/wwwhero/internal/config"
	"github.com/osse101/wwwhero/internal/database"
	"github.com/osse101/wwwhero/internal/random"
	"github.com/osse101/wwwhero/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration failed: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the console stays readable
	bootstrap.SetupLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	roller := random.NewFromSeed(uint64(cfg.RNGSeed))
	cat, err := bootstrap.SyncCatalog(ctx, cfg, storage.Catalog, roller)
	if err != nil {
		storage.Close()
		return err
	}
	services := bootstrap.InitializeServices(cfg, storage, cat, roller)

	components := bootstrap.ShutdownComponents{Storage: storage}
	if cfg.MetricsPort > 0 {
		var pool database.Pool
		if storage.Pool != nil {
			pool = storage.Pool
		}
		srv := server.NewServer(cfg.MetricsPort, cfg.Version, pool)
		components.Server = srv
		go func() {
			if err := srv.Start(); err != nil {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
	}
	defer bootstrap.GracefulShutdown(context.Background(), components)

	done := make(chan error, 1)
	go func() {
		done <- newConsole(services, os.Stdin, os.Stdout, time.Now).Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return nil
	}
}
