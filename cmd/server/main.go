package main

import (
	"context"
	"log"

	"github.com/alkime/podcurate/internal/config"
	"github.com/alkime/podcurate/internal/logger"
	"github.com/alkime/podcurate/internal/server"
	"github.com/alkime/podcurate/internal/store"
	"github.com/alkime/podcurate/internal/wizard"
	"github.com/alkime/podcurate/internal/workdir"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger := logger.SetupLogger(cfg)

	logger.Info("Starting podcurate server",
		"env", cfg.Env,
		"port", cfg.Port,
		"allowed_origins", cfg.AllowedOrigins,
	)

	dir, err := workdir.New(cfg.StorageRoot)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}

	snapshots, err := store.Open(dir.WorkPath("flows"))
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}
	logger.Debug("Snapshot store ready", "dir", dir.WorkPath("flows"))

	srv := server.New(cfg, logger,
		server.WithStore(snapshots),
		server.WithHandoff(func(_ context.Context, summary wizard.Summary) error {
			logger.Info("Flow handed off",
				"liked", summary.LikedCount,
				"schedule", summary.Schedule,
				"presenters", len(summary.Presenters),
			)
			return nil
		}),
	)

	if err := server.Run(srv); err != nil {
		logger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
