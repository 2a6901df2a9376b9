package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/deadlineai/remind-api/internal/domain"
)

// ReminderStore defines the interface for reminder persistence.
// Version: 1.0
type ReminderStore interface {
	// Add saves a reminder under its assigned ID.
	// Adding a reminder whose ID is already present replaces the existing
	// record silently; callers that need create-only semantics must check
	// with Get first.
	// Returns validation errors from the domain Reminder if data is invalid.
	Add(ctx context.Context, reminder *domain.Reminder) error

	// Get retrieves a reminder by its unique ID.
	// The returned reminder is a copy; mutating it does not affect the store.
	// Returns ErrReminderNotFound if the reminder does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// Remove deletes the reminder with the given ID.
	// It reports whether a reminder was actually removed; removing an
	// unknown ID is not an error.
	Remove(ctx context.Context, id uuid.UUID) bool

	// UpdateStatus transitions the status of an existing reminder and
	// refreshes its updated-at timestamp. errorMsg records the failure
	// reason when the new status is failed; it is ignored (and any prior
	// failure reason cleared) for other statuses.
	// Returns ErrReminderNotFound if the reminder does not exist.
	// Returns validation errors if the status is invalid.
	UpdateStatus(
		ctx context.Context,
		id uuid.UUID,
		status domain.ReminderStatus,
		errorMsg string,
	) error

	// ListPending retrieves all reminders currently in the pending status.
	// The result is a point-in-time snapshot of copies; later store
	// mutations do not affect it. Returns an empty slice if none match.
	ListPending(ctx context.Context) ([]*domain.Reminder, error)

	// List retrieves every reminder regardless of status, as copies.
	// Returns an empty slice for an empty store.
	List(ctx context.Context) ([]*domain.Reminder, error)

	// ReplaceAll substitutes the entire contents of the store with the
	// given reminders in one atomic step. Used when restoring from a
	// snapshot; concurrent readers see either the old set or the new set,
	// never a mixture.
	ReplaceAll(ctx context.Context, reminders []*domain.Reminder) error

	// Len reports the current number of stored reminders.
	Len(ctx context.Context) int
}
