package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"equipment-ingest/config"
	"equipment-ingest/internal/db"
	"equipment-ingest/internal/ingest"
	"equipment-ingest/internal/logging"
	"equipment-ingest/internal/store"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "equipment-ingest")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("configuration loaded", zap.String("path", configPath))

	if err := run(cfg, logger); err != nil {
		logger.Error("import failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run imports the configured batch. It returns an error when the run could not start
// or when any record failed or was skipped, so a partial import exits with status 1
// even though every other record was written.
func run(cfg *config.Config, logger *zap.Logger) error {
	// The whole batch is read before the store is touched.
	devices, err := ingest.LoadDevices(cfg.Input.Path)
	if err != nil {
		return err
	}
	logger.Info("input loaded", zap.String("path", cfg.Input.Path), zap.Int("devices", len(devices)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Init(ctx, &cfg.Database, cfg.Log.SQLLevel, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	svc := ingest.NewService(cfg, store.NewGormStore(gormDB), logger)
	return svc.Run(ctx, devices).Err()
}
