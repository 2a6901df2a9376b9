package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/service"
	"github.com/deadlineai/remind-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrReminderNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrNotPending):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrEmptyDeadlineID),
		errors.Is(err, domain.ErrEmptyReminderTitle),
		errors.Is(err, domain.ErrEmptyRecipient),
		errors.Is(err, domain.ErrEmptyChannel),
		errors.Is(err, domain.ErrZeroTriggerTime),
		errors.Is(err, domain.ErrZeroDeadlineTime),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	// Map specific error types to user-friendly messages
	switch {
	// Not found errors
	case errors.Is(err, service.ErrReminderNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Reminder not found"

	// Conflict errors
	case errors.Is(err, service.ErrNotPending):
		return "Reminder is not pending"

	// Bad request errors
	case errors.Is(err, domain.ErrEmptyDeadlineID):
		return "Deadline ID is required"

	case errors.Is(err, domain.ErrEmptyReminderTitle):
		return "Title is required"

	case errors.Is(err, domain.ErrEmptyRecipient):
		return "Recipient is required"

	case errors.Is(err, domain.ErrEmptyChannel):
		return "Channel is required"

	case errors.Is(err, domain.ErrZeroTriggerTime):
		return "Trigger time is required"

	case errors.Is(err, domain.ErrZeroDeadlineTime):
		return "Deadline time is required"

	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid status"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid reminder data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'CreateReminderRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			// Further split to get just the field validation part
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				// Create a cleaner error message
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "uuid":
		return "invalid UUID format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
