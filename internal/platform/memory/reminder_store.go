package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/platform/logger"
	"github.com/deadlineai/remind-api/internal/store"
)

// MemoryReminderStore implements the store.ReminderStore interface using an
// in-process map guarded by a read-write mutex. All stored records are
// private clones; callers never share memory with the store.
type MemoryReminderStore struct {
	mu        sync.RWMutex
	reminders map[uuid.UUID]*domain.Reminder
	logger    *slog.Logger
}

// NewMemoryReminderStore creates a new in-memory implementation of the
// ReminderStore interface.
// If logger is nil, a default logger will be used.
func NewMemoryReminderStore(logger *slog.Logger) *MemoryReminderStore {
	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryReminderStore{
		reminders: make(map[uuid.UUID]*domain.Reminder),
		logger:    logger.With(slog.String("component", "reminder_store")),
	}
}

// Ensure MemoryReminderStore implements store.ReminderStore interface
var _ store.ReminderStore = (*MemoryReminderStore)(nil)

// Add implements store.ReminderStore.Add
// It saves a reminder under its ID, replacing any existing record silently.
// Returns validation errors from the domain Reminder if data is invalid.
func (s *MemoryReminderStore) Add(ctx context.Context, reminder *domain.Reminder) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate reminder data
	if err := reminder.Validate(); err != nil {
		log.Warn("reminder validation failed during add",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	s.mu.Lock()
	_, replaced := s.reminders[reminder.ID]
	s.reminders[reminder.ID] = reminder.Clone()
	s.mu.Unlock()

	log.Info("reminder added",
		slog.String("reminder_id", reminder.ID.String()),
		slog.String("channel", string(reminder.Channel)),
		slog.String("status", string(reminder.Status)),
		slog.Bool("replaced", replaced))
	return nil
}

// Get implements store.ReminderStore.Get
// It retrieves a copy of the reminder with the given ID; mutating the result
// never touches stored state.
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *MemoryReminderStore) Get(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.RLock()
	reminder, ok := s.reminders[id]
	var clone *domain.Reminder
	if ok {
		clone = reminder.Clone()
	}
	s.mu.RUnlock()

	if !ok {
		log.Debug("reminder not found", slog.String("reminder_id", id.String()))
		return nil, store.ErrReminderNotFound
	}

	return clone, nil
}

// Remove implements store.ReminderStore.Remove
// It deletes the reminder with the given ID and reports whether one existed.
func (s *MemoryReminderStore) Remove(ctx context.Context, id uuid.UUID) bool {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	_, ok := s.reminders[id]
	if ok {
		delete(s.reminders, id)
	}
	s.mu.Unlock()

	if ok {
		log.Info("reminder removed", slog.String("reminder_id", id.String()))
	} else {
		log.Debug("reminder not found during remove", slog.String("reminder_id", id.String()))
	}
	return ok
}

// UpdateStatus implements store.ReminderStore.UpdateStatus
// It transitions the status of an existing reminder, recording errorMsg as
// the last error on a failed transition and clearing it otherwise.
// Returns store.ErrReminderNotFound if the reminder does not exist.
// Returns validation errors if the status is invalid.
func (s *MemoryReminderStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ReminderStatus,
	errorMsg string,
) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	reminder, ok := s.reminders[id]
	var err error
	if ok {
		// The stored record is a private clone, so mutating it under the
		// lock is safe. UpdateStatus validates before modifying anything.
		err = reminder.UpdateStatus(status, errorMsg)
	}
	s.mu.Unlock()

	if !ok {
		log.Debug("reminder not found during status update",
			slog.String("reminder_id", id.String()),
			slog.String("status", string(status)))
		return store.ErrReminderNotFound
	}

	if err != nil {
		log.Warn("reminder status update rejected",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()),
			slog.String("status", string(status)))
		return err
	}

	log.Info("reminder status updated",
		slog.String("reminder_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// ListPending implements store.ReminderStore.ListPending
// It returns a point-in-time snapshot of all pending reminders as copies.
func (s *MemoryReminderStore) ListPending(ctx context.Context) ([]*domain.Reminder, error) {
	s.mu.RLock()
	pending := make([]*domain.Reminder, 0, len(s.reminders))
	for _, reminder := range s.reminders {
		if reminder.IsPending() {
			pending = append(pending, reminder.Clone())
		}
	}
	s.mu.RUnlock()

	return pending, nil
}

// List implements store.ReminderStore.List
// It returns every stored reminder regardless of status, as copies.
func (s *MemoryReminderStore) List(ctx context.Context) ([]*domain.Reminder, error) {
	s.mu.RLock()
	all := make([]*domain.Reminder, 0, len(s.reminders))
	for _, reminder := range s.reminders {
		all = append(all, reminder.Clone())
	}
	s.mu.RUnlock()

	return all, nil
}

// ReplaceAll implements store.ReminderStore.ReplaceAll
// It atomically substitutes the entire store contents with the given
// reminders. All records are validated before anything is replaced, so a
// bad batch leaves the store untouched.
func (s *MemoryReminderStore) ReplaceAll(ctx context.Context, reminders []*domain.Reminder) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	replacement := make(map[uuid.UUID]*domain.Reminder, len(reminders))
	for _, reminder := range reminders {
		if err := reminder.Validate(); err != nil {
			log.Warn("reminder validation failed during replace",
				slog.String("error", err.Error()),
				slog.String("reminder_id", reminder.ID.String()))
			return fmt.Errorf("%w: reminder %s: %v",
				store.ErrInvalidEntity, reminder.ID, err)
		}
		replacement[reminder.ID] = reminder.Clone()
	}

	s.mu.Lock()
	s.reminders = replacement
	s.mu.Unlock()

	log.Info("reminder store contents replaced",
		slog.Int("count", len(replacement)))
	return nil
}

// Len implements store.ReminderStore.Len
// It reports the current number of stored reminders.
func (s *MemoryReminderStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reminders)
}
