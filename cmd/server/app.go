package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deadlineai/remind-api/internal/config"
	"github.com/deadlineai/remind-api/internal/notify"
	"github.com/deadlineai/remind-api/internal/platform/memory"
	"github.com/deadlineai/remind-api/internal/platform/snapshot"
	"github.com/deadlineai/remind-api/internal/scheduler"
	"github.com/deadlineai/remind-api/internal/service"
	"github.com/deadlineai/remind-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Stores (using interfaces for proper abstraction)
	reminderStore store.ReminderStore
	snapshotStore *snapshot.FileStore

	// Notification dispatch
	registry *notify.Registry

	// Service interfaces
	reminderService service.ReminderService

	// Background work
	scheduler   *scheduler.Scheduler
	snapshotJob *service.SnapshotJob
}

// newApplication creates a new application instance with all dependencies
// initialized and background work started. It accepts core dependencies like
// configuration and logger that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize stores
	app.reminderStore = memory.NewMemoryReminderStore(logger)
	app.snapshotStore = snapshot.NewFileStore(cfg.Snapshot.Path, logger)

	// Initialize the notification registry with the built-in channel handlers
	app.registry = notify.NewRegistry(logger)
	notify.RegisterDefaults(app.registry, logger)

	// Initialize reminder service
	var err error
	app.reminderService, err = service.NewReminderService(
		app.reminderStore,
		app.snapshotStore,
		nil,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder service: %w", err)
	}

	// Restore the reminder set from the last snapshot. A failed restore is
	// logged but does not block startup; the server comes up empty.
	if cfg.Snapshot.LoadOnStart {
		count, err := app.reminderService.RestoreSnapshot(ctx)
		if err != nil {
			logger.Error("failed to restore snapshot on startup",
				"error", err,
				"path", cfg.Snapshot.Path)
		} else {
			logger.Info("snapshot restored on startup", "count", count)
		}
	}

	// Initialize and start the dispatch loop
	app.scheduler = scheduler.NewScheduler(app.reminderStore, app.registry, scheduler.Config{
		Interval:    time.Duration(cfg.Scheduler.IntervalSeconds) * time.Second,
		StopTimeout: time.Duration(cfg.Scheduler.StopTimeoutSeconds) * time.Second,
	}, logger)
	app.scheduler.Start()

	// Initialize and start the periodic snapshot job
	app.snapshotJob = service.NewSnapshotJob(app.reminderService, cfg.Snapshot.SaveSchedule, logger)
	if err := app.snapshotJob.Start(); err != nil {
		app.scheduler.Stop()
		return nil, fmt.Errorf("failed to start snapshot job: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop background work first so nothing is dispatching or saving while
	// the final snapshot is written
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	if app.snapshotJob != nil {
		app.snapshotJob.Stop()
	}

	// Final snapshot so no accepted reminder is lost across the restart
	if app.reminderService != nil {
		count, err := app.reminderService.SaveSnapshot(context.Background())
		if err != nil {
			app.logger.Error("final snapshot save failed", "error", err)
		} else {
			app.logger.Info("final snapshot saved", "count", count)
		}
	}

	app.logger.Info("Application shutdown completed")
}
