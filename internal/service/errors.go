package service

import (
	"errors"
	"fmt"

	"github.com/deadlineai/remind-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ReminderServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrReminderNotFound indicates that the reminder does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrNotPending indicates an operation that is only legal for pending
	// reminders was attempted on a record in a terminal status.
	// API layer should map this to HTTP 409 Conflict.
	ErrNotPending = errors.New("reminder is not pending")
)

// ReminderServiceError wraps errors from the reminder service with context.
type ReminderServiceError struct {
	// Operation is the operation that failed (e.g., "create_reminder", "dismiss_reminder")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ReminderServiceError.
func (e *ReminderServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reminder service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("reminder service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReminderServiceError) Unwrap() error {
	return e.Err
}

// NewReminderServiceError creates a new ReminderServiceError.
// It returns known sentinel errors directly without wrapping.
func NewReminderServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Check for service-defined sentinel errors
	if errors.Is(err, ErrReminderNotFound) {
		return ErrReminderNotFound
	}
	if errors.Is(err, ErrNotPending) {
		return ErrNotPending
	}

	// Store-level not-found maps to the service-level sentinel
	if store.IsNotFoundError(err) {
		return ErrReminderNotFound
	}

	// If not a sentinel to be returned directly, wrap it
	return &ReminderServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
