package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func validParams() NewReminderParams {
	return NewReminderParams{
		DeadlineID:  uuid.New(),
		Title:       "Submit quarterly report",
		Description: "Finance review draft is due.",
		DeadlineAt:  time.Now().UTC().Add(48 * time.Hour),
		TriggerAt:   time.Now().UTC().Add(24 * time.Hour),
		Channel:     ChannelEmail,
		Recipient:   "user@example.com",
		Metadata:    map[string]any{"priority": "high"},
	}
}

func TestNewReminder(t *testing.T) {
	t.Parallel()
	params := validParams()

	reminder, err := NewReminder(params)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if reminder.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if reminder.DeadlineID != params.DeadlineID {
		t.Errorf("Expected deadline ID %s, got %s", params.DeadlineID, reminder.DeadlineID)
	}

	if reminder.Title != params.Title {
		t.Errorf("Expected title %s, got %s", params.Title, reminder.Title)
	}

	if reminder.Status != ReminderStatusPending {
		t.Errorf("Expected status %s, got %s", ReminderStatusPending, reminder.Status)
	}

	if reminder.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if reminder.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	if reminder.UpdatedAt.Before(reminder.CreatedAt) {
		t.Error("Expected UpdatedAt >= CreatedAt")
	}

	// Metadata must be copied, not aliased
	params.Metadata["priority"] = "low"
	if reminder.Metadata["priority"] != "high" {
		t.Error("Expected metadata to be copied at construction")
	}

	// Test missing deadline ID
	bad := validParams()
	bad.DeadlineID = uuid.Nil
	if _, err := NewReminder(bad); err != ErrEmptyDeadlineID {
		t.Errorf("Expected error %v, got %v", ErrEmptyDeadlineID, err)
	}

	// Test missing title
	bad = validParams()
	bad.Title = ""
	if _, err := NewReminder(bad); err != ErrEmptyReminderTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyReminderTitle, err)
	}

	// Test missing recipient
	bad = validParams()
	bad.Recipient = ""
	if _, err := NewReminder(bad); err != ErrEmptyRecipient {
		t.Errorf("Expected error %v, got %v", ErrEmptyRecipient, err)
	}

	// Test zero trigger time
	bad = validParams()
	bad.TriggerAt = time.Time{}
	if _, err := NewReminder(bad); err != ErrZeroTriggerTime {
		t.Errorf("Expected error %v, got %v", ErrZeroTriggerTime, err)
	}
}

func TestNewReminderAllowsTriggerAfterDeadline(t *testing.T) {
	t.Parallel()
	params := validParams()
	params.TriggerAt = params.DeadlineAt.Add(2 * time.Hour)

	reminder, err := NewReminder(params)
	if err != nil {
		t.Fatalf("Expected no error for trigger after deadline, got %v", err)
	}

	if !reminder.TriggerAt.After(reminder.DeadlineAt) {
		t.Error("Expected trigger time to be preserved after the deadline")
	}
}

func TestNewReminderAllowsUnknownChannel(t *testing.T) {
	t.Parallel()
	params := validParams()
	params.Channel = Channel("carrier_pigeon")

	reminder, err := NewReminder(params)
	if err != nil {
		t.Fatalf("Expected no error for unknown channel, got %v", err)
	}

	if reminder.Channel != Channel("carrier_pigeon") {
		t.Errorf("Expected channel to be stored as given, got %s", reminder.Channel)
	}
}

func TestReminderValidate(t *testing.T) {
	t.Parallel()
	valid := Reminder{
		ID:         uuid.New(),
		DeadlineID: uuid.New(),
		Title:      "Renew certificate",
		DeadlineAt: time.Now().UTC().Add(time.Hour),
		TriggerAt:  time.Now().UTC(),
		Channel:    ChannelPush,
		Status:     ReminderStatusPending,
		Recipient:  "device-token-1",
	}

	// Test valid reminder
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalid := valid
	invalid.ID = uuid.Nil
	if err := invalid.Validate(); err != ErrEmptyReminderID {
		t.Errorf("Expected error %v, got %v", ErrEmptyReminderID, err)
	}

	// Test invalid channel
	invalid = valid
	invalid.Channel = ""
	if err := invalid.Validate(); err != ErrEmptyChannel {
		t.Errorf("Expected error %v, got %v", ErrEmptyChannel, err)
	}

	// Test invalid status
	invalid = valid
	invalid.Status = "snoozed"
	if err := invalid.Validate(); err != ErrInvalidStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}
}

func TestReminderUpdateStatus(t *testing.T) {
	t.Parallel()
	reminder, err := NewReminder(validParams())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	origUpdatedAt := reminder.UpdatedAt
	if err := reminder.UpdateStatus(ReminderStatusFailed, "smtp timeout"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if reminder.Status != ReminderStatusFailed {
		t.Errorf("Expected status %s, got %s", ReminderStatusFailed, reminder.Status)
	}

	if reminder.LastError != "smtp timeout" {
		t.Errorf("Expected last error to be recorded, got %q", reminder.LastError)
	}

	if reminder.UpdatedAt.Before(origUpdatedAt) {
		t.Error("Expected UpdatedAt to advance")
	}

	// A non-failed transition clears the last error
	if err := reminder.UpdateStatus(ReminderStatusSent, ""); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if reminder.LastError != "" {
		t.Errorf("Expected last error to be cleared, got %q", reminder.LastError)
	}

	// Test invalid status
	if err := reminder.UpdateStatus("snoozed", ""); err != ErrInvalidStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}
}

func TestReminderDismiss(t *testing.T) {
	t.Parallel()
	reminder, err := NewReminder(validParams())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := reminder.Dismiss(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if reminder.Status != ReminderStatusDismissed {
		t.Errorf("Expected status %s, got %s", ReminderStatusDismissed, reminder.Status)
	}

	if reminder.IsPending() {
		t.Error("Expected dismissed reminder to not be pending")
	}
}

func TestReminderDue(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	reminder := Reminder{TriggerAt: now.Add(-time.Minute)}

	if !reminder.Due(now) {
		t.Error("Expected past trigger to be due")
	}

	reminder.TriggerAt = now
	if !reminder.Due(now) {
		t.Error("Expected trigger equal to now to be due")
	}

	reminder.TriggerAt = now.Add(time.Hour)
	if reminder.Due(now) {
		t.Error("Expected future trigger to not be due")
	}
}

func TestReminderClone(t *testing.T) {
	t.Parallel()
	reminder, err := NewReminder(NewReminderParams{
		DeadlineID: uuid.New(),
		Title:      "Rotate credentials",
		DeadlineAt: time.Now().UTC().Add(time.Hour),
		TriggerAt:  time.Now().UTC(),
		Channel:    ChannelInApp,
		Recipient:  "user-42",
		Metadata: map[string]any{
			"priority": "critical",
			"labels":   []any{"ops", "security"},
			"context":  map[string]any{"region": "eu-west-1"},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	clone := reminder.Clone()

	if clone == reminder {
		t.Fatal("Expected clone to be a distinct value")
	}

	// Mutating the clone's metadata must not touch the original
	clone.Metadata["priority"] = "low"
	clone.Metadata["context"].(map[string]any)["region"] = "us-east-1"
	clone.Metadata["labels"].([]any)[0] = "changed"

	if reminder.Metadata["priority"] != "critical" {
		t.Error("Expected original scalar metadata to be unchanged")
	}
	if reminder.Metadata["context"].(map[string]any)["region"] != "eu-west-1" {
		t.Error("Expected original nested map to be unchanged")
	}
	if reminder.Metadata["labels"].([]any)[0] != "ops" {
		t.Error("Expected original nested slice to be unchanged")
	}
}
