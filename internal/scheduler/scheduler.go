package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/notify"
	"github.com/deadlineai/remind-api/internal/redact"
	"github.com/deadlineai/remind-api/internal/store"
)

// Config holds configuration for the scheduler loop
type Config struct {
	// Interval between scans of the pending reminders
	Interval time.Duration

	// StopTimeout bounds how long Stop waits for the loop goroutine to exit
	StopTimeout time.Duration
}

// DefaultConfig returns a Config with reasonable defaults
func DefaultConfig() Config {
	return Config{
		Interval:    time.Minute,
		StopTimeout: 5 * time.Second,
	}
}

// Scheduler periodically scans the store for due reminders and hands each
// one to the dispatcher, recording the outcome on the stored record. A
// reminder is dispatched at most once: the scan only considers pending
// records, and every dispatch attempt moves the record to sent or failed.
type Scheduler struct {
	store      store.ReminderStore
	dispatcher notify.Dispatcher
	config     Config
	logger     *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewScheduler creates a scheduler over the given store and dispatcher.
// Zero config fields fall back to the defaults.
func NewScheduler(
	reminderStore store.ReminderStore,
	dispatcher notify.Dispatcher,
	config Config,
	logger *slog.Logger,
) *Scheduler {
	if reminderStore == nil {
		panic("reminderStore cannot be nil")
	}
	if dispatcher == nil {
		panic("dispatcher cannot be nil")
	}
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	if config.StopTimeout <= 0 {
		config.StopTimeout = DefaultConfig().StopTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		store:      reminderStore,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger.With(slog.String("component", "scheduler")),
	}
}

// Start launches the loop goroutine and returns immediately. The first scan
// runs right away; subsequent scans follow at the configured interval.
// Calling Start while the loop is already running is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Info("scheduler already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.running = true

	go s.run(ctx, done)

	s.logger.Info("scheduler started", "interval", s.config.Interval)
}

// Stop cancels the loop and waits up to the configured stop timeout for the
// goroutine to exit. An in-flight dispatch is not interrupted; cancellation
// prevents the next tick. Calling Stop when the loop is not running is a
// no-op. After Stop returns, Start may be called again.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.running = false
	s.mu.Unlock()

	cancel()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
	case <-time.After(s.config.StopTimeout):
		s.logger.Warn("scheduler stop timed out", "timeout", s.config.StopTimeout)
	}
}

// Running reports whether the loop goroutine is live.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Interval returns the configured scan interval.
func (s *Scheduler) Interval() time.Duration {
	return s.config.Interval
}

// run is the loop goroutine. It owns no reminder state; everything flows
// through the store so external callers observe a consistent view.
func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.scan(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("scheduler loop exiting")
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

// scan runs a single pass: read the clock once, snapshot the pending
// reminders, and dispatch every one whose trigger time has been reached.
func (s *Scheduler) scan(ctx context.Context) {
	now := time.Now().UTC()

	pending, err := s.store.ListPending(ctx)
	if err != nil {
		s.logger.Error("failed to list pending reminders", "error", err)
		return
	}

	dispatched := 0
	for _, reminder := range pending {
		if ctx.Err() != nil {
			return
		}
		if !reminder.Due(now) {
			continue
		}
		s.process(ctx, reminder)
		dispatched++
	}

	if dispatched > 0 {
		s.logger.Debug("scan complete",
			"pending", len(pending),
			"dispatched", dispatched)
	}
}

// process dispatches one due reminder and records the outcome.
func (s *Scheduler) process(ctx context.Context, reminder *domain.Reminder) {
	log := s.logger.With(
		"reminder_id", reminder.ID.String(),
		"channel", string(reminder.Channel),
	)

	// The pending snapshot may be stale: the reminder can be dismissed or
	// removed between the scan and this point. Re-read the live record and
	// skip anything that is no longer pending.
	current, err := s.store.Get(ctx, reminder.ID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("reminder removed before dispatch")
		} else {
			log.Error("failed to re-read reminder before dispatch", "error", err)
		}
		return
	}
	if !current.IsPending() {
		log.Debug("reminder no longer pending", "status", string(current.Status))
		return
	}

	if dispatchErr := s.dispatcher.Dispatch(ctx, current); dispatchErr != nil {
		log.Warn("reminder dispatch failed", "error", dispatchErr)

		updateErr := s.store.UpdateStatus(
			ctx, current.ID, domain.ReminderStatusFailed, redact.Error(dispatchErr),
		)
		if updateErr != nil {
			if store.IsNotFoundError(updateErr) {
				log.Debug("reminder removed while dispatching")
			} else {
				log.Error("failed to mark reminder failed", "error", updateErr)
			}
		}
		return
	}

	if updateErr := s.store.UpdateStatus(ctx, current.ID, domain.ReminderStatusSent, ""); updateErr != nil {
		if store.IsNotFoundError(updateErr) {
			log.Debug("reminder removed while dispatching")
		} else {
			log.Error("failed to mark reminder sent", "error", updateErr)
		}
		return
	}

	log.Info("reminder dispatched", "title", current.Title)
}
