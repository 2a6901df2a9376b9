package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReminderStatus represents the delivery state of a reminder
type ReminderStatus string

// Possible reminder status values
const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusSent      ReminderStatus = "sent"
	ReminderStatusDismissed ReminderStatus = "dismissed"
	ReminderStatusFailed    ReminderStatus = "failed"
)

// Channel identifies the notification transport for a reminder.
// The four built-in channels are listed below, but the value is an open tag:
// a reminder carrying an unknown channel is stored normally and fails at
// dispatch time when no handler is registered for it.
type Channel string

// Built-in notification channels
const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "in_app"
)

// Common validation errors for Reminder
var (
	ErrEmptyReminderID    = errors.New("reminder ID cannot be empty")
	ErrEmptyDeadlineID    = errors.New("reminder deadline ID cannot be empty")
	ErrEmptyReminderTitle = errors.New("reminder title cannot be empty")
	ErrEmptyRecipient     = errors.New("reminder recipient cannot be empty")
	ErrEmptyChannel       = errors.New("reminder channel cannot be empty")
	ErrZeroTriggerTime    = errors.New("reminder trigger time cannot be zero")
	ErrZeroDeadlineTime   = errors.New("reminder deadline time cannot be zero")
	ErrInvalidStatus      = errors.New("invalid reminder status")
)

// Reminder represents a scheduled notification tied to an external deadline.
// It tracks when the notification should fire, how it should be delivered,
// and the outcome of the delivery attempt.
type Reminder struct {
	ID          uuid.UUID      `json:"id"`
	DeadlineID  uuid.UUID      `json:"deadline_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DeadlineAt  time.Time      `json:"deadline_at"`
	TriggerAt   time.Time      `json:"trigger_at"`
	Channel     Channel        `json:"channel"`
	Status      ReminderStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Recipient   string         `json:"recipient"`
	LastError   string         `json:"last_error,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewReminderParams carries the caller-supplied fields for NewReminder.
// The subsystem assigns the ID, status, and timestamps itself.
type NewReminderParams struct {
	DeadlineID  uuid.UUID
	Title       string
	Description string
	DeadlineAt  time.Time
	TriggerAt   time.Time
	Channel     Channel
	Recipient   string
	Metadata    map[string]any
}

// NewReminder creates a new Reminder from the given parameters.
// It generates a new UUID for the reminder ID, sets the status to pending,
// and sets the creation/update timestamps. The metadata map is copied so
// later mutations by the caller do not leak into the stored reminder.
// Returns an error if validation fails.
func NewReminder(params NewReminderParams) (*Reminder, error) {
	now := time.Now().UTC()
	reminder := &Reminder{
		ID:          uuid.New(),
		DeadlineID:  params.DeadlineID,
		Title:       params.Title,
		Description: params.Description,
		DeadlineAt:  params.DeadlineAt,
		TriggerAt:   params.TriggerAt,
		Channel:     params.Channel,
		Status:      ReminderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Recipient:   params.Recipient,
		Metadata:    copyMetadata(params.Metadata),
	}

	if err := reminder.Validate(); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Validate checks if the Reminder has valid data.
// The trigger/deadline ordering is deliberately not checked: firing after
// the deadline has passed is a legitimate use.
// Returns an error if any field fails validation.
func (r *Reminder) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReminderID
	}

	if r.DeadlineID == uuid.Nil {
		return ErrEmptyDeadlineID
	}

	if r.Title == "" {
		return ErrEmptyReminderTitle
	}

	if r.Recipient == "" {
		return ErrEmptyRecipient
	}

	if r.Channel == "" {
		return ErrEmptyChannel
	}

	if r.TriggerAt.IsZero() {
		return ErrZeroTriggerTime
	}

	if r.DeadlineAt.IsZero() {
		return ErrZeroDeadlineTime
	}

	if !isValidReminderStatus(r.Status) {
		return ErrInvalidStatus
	}

	return nil
}

// UpdateStatus updates the reminder's status and refreshes the UpdatedAt
// timestamp. The errorMsg is recorded as LastError on a failed transition
// and cleared on any other transition.
// Returns an error if the new status is invalid.
func (r *Reminder) UpdateStatus(status ReminderStatus, errorMsg string) error {
	if !isValidReminderStatus(status) {
		return ErrInvalidStatus
	}

	r.Status = status
	if status == ReminderStatusFailed {
		r.LastError = errorMsg
	} else {
		r.LastError = ""
	}
	r.touch()
	return nil
}

// Dismiss marks the reminder as dismissed. Dismissal is an external action;
// the scheduler never sets this status itself.
func (r *Reminder) Dismiss() error {
	return r.UpdateStatus(ReminderStatusDismissed, "")
}

// IsPending reports whether the reminder is still awaiting dispatch.
func (r *Reminder) IsPending() bool {
	return r.Status == ReminderStatusPending
}

// Due reports whether the reminder is eligible for dispatch at the given time.
func (r *Reminder) Due(now time.Time) bool {
	return !r.TriggerAt.After(now)
}

// Clone returns a deep copy of the reminder, including its metadata.
// Stores hand out clones so no caller ever observes a record mid-update.
func (r *Reminder) Clone() *Reminder {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Metadata = copyMetadata(r.Metadata)
	return &clone
}

// touch refreshes UpdatedAt, keeping it monotonic even if the wall clock
// stepped backwards since the last update.
func (r *Reminder) touch() {
	now := time.Now().UTC()
	if now.Before(r.UpdatedAt) {
		now = r.UpdatedAt
	}
	r.UpdatedAt = now
}

// isValidReminderStatus checks if the given status is a valid ReminderStatus.
func isValidReminderStatus(status ReminderStatus) bool {
	switch status {
	case ReminderStatusPending, ReminderStatusSent,
		ReminderStatusDismissed, ReminderStatusFailed:
		return true
	default:
		return false
	}
}

// copyMetadata deep-copies a metadata mapping. Values decoded from JSON are
// maps, slices, and scalars; scalars are immutable and shared as-is.
func copyMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	copied := make(map[string]any, len(metadata))
	for key, value := range metadata {
		copied[key] = copyMetadataValue(value)
	}
	return copied
}

func copyMetadataValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return copyMetadata(v)
	case []any:
		copied := make([]any, len(v))
		for i, item := range v {
			copied[i] = copyMetadataValue(item)
		}
		return copied
	default:
		return v
	}
}
