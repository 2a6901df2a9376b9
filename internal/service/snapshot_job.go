package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SnapshotJob saves the reminder set to disk on a cron schedule. It is the
// periodic leg of the persistence policy; startup restore, shutdown save,
// and the on-demand API save live elsewhere.
type SnapshotJob struct {
	service  ReminderService
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSnapshotJob creates a snapshot job with the given cron schedule.
// The schedule accepts standard five-field cron expressions as well as
// descriptors like "@every 5m" and "@hourly".
func NewSnapshotJob(service ReminderService, schedule string, logger *slog.Logger) *SnapshotJob {
	if service == nil {
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SnapshotJob{
		service:  service,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "snapshot_job"),
	}
}

// Start registers the save entry and starts the cron scheduler.
func (j *SnapshotJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		count, err := j.service.SaveSnapshot(context.Background())
		if err != nil {
			j.logger.Error("scheduled snapshot save failed", "error", err)
			return
		}
		j.logger.Debug("scheduled snapshot save complete", "count", count)
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("snapshot job started", "schedule", j.schedule)
	return nil
}

// Stop stops the cron scheduler and waits for a running save to finish.
func (j *SnapshotJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("snapshot job stopped")
}
