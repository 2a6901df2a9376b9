package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/domain/insight"
	"github.com/deadlineai/remind-api/internal/store"
)

// SnapshotStore defines the persistence interface for the service layer.
// It is satisfied by snapshot.FileStore.
type SnapshotStore interface {
	// Save writes the full reminder set as one snapshot document
	Save(ctx context.Context, reminders []*domain.Reminder) error

	// Load reads the snapshot document back; a missing file yields an
	// empty set
	Load(ctx context.Context) ([]*domain.Reminder, error)

	// Path returns the location of the snapshot document
	Path() string
}

// ReminderService provides reminder-related operations
type ReminderService interface {
	// CreateReminder validates and stores a new pending reminder
	CreateReminder(ctx context.Context, params domain.NewReminderParams) (*domain.Reminder, error)

	// GetReminder retrieves a reminder by its ID
	GetReminder(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// ListReminders returns all reminders, optionally filtered by status.
	// An empty status means no filter.
	ListReminders(ctx context.Context, status domain.ReminderStatus) ([]*domain.Reminder, error)

	// DismissReminder cancels a pending reminder and returns the updated
	// record. Only pending reminders can be dismissed.
	DismissReminder(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// RemoveReminder deletes a reminder regardless of its status
	RemoveReminder(ctx context.Context, id uuid.UUID) error

	// InsightReport computes the urgency/workload report over all reminders
	InsightReport(ctx context.Context) (insight.Report, error)

	// SaveSnapshot persists the current reminder set to the snapshot store
	// and reports how many records were written
	SaveSnapshot(ctx context.Context) (int, error)

	// RestoreSnapshot replaces the in-memory reminder set with the snapshot
	// contents and reports how many records were loaded
	RestoreSnapshot(ctx context.Context) (int, error)
}

// reminderServiceImpl implements the ReminderService interface
type reminderServiceImpl struct {
	reminderStore store.ReminderStore
	snapshots     SnapshotStore
	insights      *insight.Calculator
	logger        *slog.Logger
}

// NewReminderService creates a new ReminderService.
// It returns an error if any of the required dependencies are nil.
func NewReminderService(
	reminderStore store.ReminderStore,
	snapshots SnapshotStore,
	insights *insight.Calculator,
	logger *slog.Logger,
) (ReminderService, error) {
	// Validate dependencies
	if reminderStore == nil {
		return nil, &ReminderServiceError{
			Operation: "create_service",
			Message:   "reminderStore cannot be nil",
		}
	}
	if snapshots == nil {
		return nil, &ReminderServiceError{
			Operation: "create_service",
			Message:   "snapshots cannot be nil",
		}
	}

	// Use provided calculator and logger or create defaults
	if insights == nil {
		insights = insight.NewDefaultCalculator()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reminderServiceImpl{
		reminderStore: reminderStore,
		snapshots:     snapshots,
		insights:      insights,
		logger:        logger.With("component", "reminder_service"),
	}, nil
}

// CreateReminder validates the parameters and stores a new pending reminder
func (s *reminderServiceImpl) CreateReminder(
	ctx context.Context,
	params domain.NewReminderParams,
) (*domain.Reminder, error) {
	reminder, err := domain.NewReminder(params)
	if err != nil {
		s.logger.Warn("rejected invalid reminder",
			"error", err,
			"deadline_id", params.DeadlineID)
		return nil, NewReminderServiceError("create_reminder", "invalid reminder", err)
	}

	if err := s.reminderStore.Add(ctx, reminder); err != nil {
		s.logger.Error("failed to store reminder",
			"error", err,
			"reminder_id", reminder.ID)
		return nil, NewReminderServiceError("create_reminder", "failed to store reminder", err)
	}

	s.logger.Info("reminder created",
		"reminder_id", reminder.ID,
		"deadline_id", reminder.DeadlineID,
		"trigger_at", reminder.TriggerAt,
		"channel", string(reminder.Channel))

	return reminder, nil
}

// GetReminder retrieves a reminder by its ID
func (s *reminderServiceImpl) GetReminder(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Reminder, error) {
	reminder, err := s.reminderStore.Get(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrReminderNotFound
		}
		s.logger.Error("failed to retrieve reminder",
			"error", err,
			"reminder_id", id)
		return nil, NewReminderServiceError("get_reminder", "failed to retrieve reminder", err)
	}

	return reminder, nil
}

// ListReminders returns all reminders, optionally filtered by status
func (s *reminderServiceImpl) ListReminders(
	ctx context.Context,
	status domain.ReminderStatus,
) ([]*domain.Reminder, error) {
	switch status {
	case "", domain.ReminderStatusPending, domain.ReminderStatusSent,
		domain.ReminderStatusDismissed, domain.ReminderStatusFailed:
	default:
		s.logger.Warn("rejected invalid status filter", "status", string(status))
		return nil, NewReminderServiceError(
			"list_reminders", "invalid status filter", domain.ErrInvalidStatus,
		)
	}

	reminders, err := s.reminderStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list reminders", "error", err)
		return nil, NewReminderServiceError("list_reminders", "failed to list reminders", err)
	}

	if status == "" {
		return reminders, nil
	}

	filtered := make([]*domain.Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		if reminder.Status == status {
			filtered = append(filtered, reminder)
		}
	}
	return filtered, nil
}

// DismissReminder cancels a pending reminder. Dismissal is the only
// externally driven status transition; the scheduler owns sent and failed.
func (s *reminderServiceImpl) DismissReminder(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Reminder, error) {
	current, err := s.reminderStore.Get(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrReminderNotFound
		}
		s.logger.Error("failed to retrieve reminder for dismissal",
			"error", err,
			"reminder_id", id)
		return nil, NewReminderServiceError("dismiss_reminder", "failed to retrieve reminder", err)
	}

	if !current.IsPending() {
		s.logger.Warn("dismiss rejected for non-pending reminder",
			"reminder_id", id,
			"status", string(current.Status))
		return nil, ErrNotPending
	}

	err = s.reminderStore.UpdateStatus(ctx, id, domain.ReminderStatusDismissed, "")
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrReminderNotFound
		}
		s.logger.Error("failed to dismiss reminder",
			"error", err,
			"reminder_id", id)
		return nil, NewReminderServiceError("dismiss_reminder", "failed to dismiss reminder", err)
	}

	updated, err := s.reminderStore.Get(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrReminderNotFound
		}
		return nil, NewReminderServiceError(
			"dismiss_reminder", "failed to re-read dismissed reminder", err,
		)
	}

	s.logger.Info("reminder dismissed", "reminder_id", id)
	return updated, nil
}

// RemoveReminder deletes a reminder regardless of its status
func (s *reminderServiceImpl) RemoveReminder(ctx context.Context, id uuid.UUID) error {
	if !s.reminderStore.Remove(ctx, id) {
		return ErrReminderNotFound
	}

	s.logger.Info("reminder removed", "reminder_id", id)
	return nil
}

// InsightReport computes the urgency/workload report over all reminders
func (s *reminderServiceImpl) InsightReport(ctx context.Context) (insight.Report, error) {
	reminders, err := s.reminderStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list reminders for insight report", "error", err)
		return insight.Report{}, NewReminderServiceError(
			"insight_report", "failed to list reminders", err,
		)
	}

	return s.insights.Report(reminders, time.Now().UTC()), nil
}

// SaveSnapshot persists the current reminder set to the snapshot store
func (s *reminderServiceImpl) SaveSnapshot(ctx context.Context) (int, error) {
	reminders, err := s.reminderStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list reminders for snapshot", "error", err)
		return 0, NewReminderServiceError("save_snapshot", "failed to list reminders", err)
	}

	if err := s.snapshots.Save(ctx, reminders); err != nil {
		s.logger.Error("failed to save snapshot",
			"error", err,
			"path", s.snapshots.Path())
		return 0, NewReminderServiceError("save_snapshot", "failed to save snapshot", err)
	}

	s.logger.Info("snapshot saved",
		"path", s.snapshots.Path(),
		"count", len(reminders))
	return len(reminders), nil
}

// RestoreSnapshot replaces the reminder set with the snapshot contents. A
// missing snapshot file restores an empty set, which clears the store.
func (s *reminderServiceImpl) RestoreSnapshot(ctx context.Context) (int, error) {
	reminders, err := s.snapshots.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load snapshot",
			"error", err,
			"path", s.snapshots.Path())
		return 0, NewReminderServiceError("restore_snapshot", "failed to load snapshot", err)
	}

	if err := s.reminderStore.ReplaceAll(ctx, reminders); err != nil {
		s.logger.Error("failed to replace reminders from snapshot",
			"error", err,
			"path", s.snapshots.Path())
		return 0, NewReminderServiceError("restore_snapshot", "failed to replace reminders", err)
	}

	s.logger.Info("snapshot restored",
		"path", s.snapshots.Path(),
		"count", len(reminders))
	return len(reminders), nil
}
