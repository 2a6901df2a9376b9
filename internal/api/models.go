package api

import (
	"time"
)

// Common request/response structures

// CreateReminderRequest defines the payload for the reminder creation endpoint.
// Trigger and deadline times are RFC 3339 timestamps; the trigger is when the
// notification fires, the deadline is what it is about.
type CreateReminderRequest struct {
	DeadlineID  string                 `json:"deadline_id" validate:"required,uuid"`
	Title       string                 `json:"title"       validate:"required,min=1,max=500"`
	Description string                 `json:"description" validate:"max=2000"`
	DeadlineAt  time.Time              `json:"deadline_at" validate:"required"`
	TriggerAt   time.Time              `json:"trigger_at"  validate:"required"`
	Channel     string                 `json:"channel"     validate:"required,oneof=email sms push in_app"`
	Recipient   string                 `json:"recipient"   validate:"required,min=1"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ReminderResponse defines the response data for a reminder.
type ReminderResponse struct {
	ID          string    `json:"id"`
	DeadlineID  string    `json:"deadline_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DeadlineAt  time.Time `json:"deadline_at"`
	TriggerAt   time.Time `json:"trigger_at"`
	Channel     string    `json:"channel"`
	Recipient   string    `json:"recipient"`
	Status      string    `json:"status"`

	// LastError carries the redacted failure reason for reminders in the
	// failed state; empty otherwise.
	LastError string `json:"last_error,omitempty"`

	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// RemindersResponse defines the response data for a reminder listing.
type RemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
	Count     int                `json:"count"`
}

// SchedulerStatusResponse defines the response data for the scheduler
// status and control endpoints.
type SchedulerStatusResponse struct {
	Running         bool    `json:"running"`
	IntervalSeconds float64 `json:"interval_seconds"`
}

// SnapshotSaveResponse defines the response data for an on-demand
// snapshot save.
type SnapshotSaveResponse struct {
	Count int `json:"count"`
}
