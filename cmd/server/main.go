// Package main implements the entry point for the reminder API server,
// which stores deadline reminders, dispatches due notifications over the
// registered channels, and persists the reminder set as JSON snapshots.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/deadlineai/remind-api/internal/config"
	"github.com/deadlineai/remind-api/internal/platform/logger"
)

func main() {
	cfg, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(context.Background(), cfg, slog.Default())
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config and any initialization error.
func initializeApp() (*config.Config, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	_, err = logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Log configuration details using structured logging
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"scheduler_interval_seconds", cfg.Scheduler.IntervalSeconds,
		"snapshot_path", cfg.Snapshot.Path,
		"snapshot_schedule", cfg.Snapshot.SaveSchedule)

	return cfg, nil
}
