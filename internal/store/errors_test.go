package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "wrapped generic error",
			err:      fmt.Errorf("failed to do something: %w", errors.New("some error")),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrReminderNotFound",
			err:      ErrReminderNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrReminderNotFound",
			err:      fmt.Errorf("failed to find reminder: %w", ErrReminderNotFound),
			expected: true,
		},
		{
			name:     "ErrUpdateFailed",
			err:      ErrUpdateFailed,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	// Create a store error
	originalErr := errors.New("snapshot file unreadable")
	storeErr := NewStoreError("reminder", "replace_all", "restore error", originalErr)

	// Test Error method
	expectedErrorString := "replace_all operation on reminder failed: restore error: snapshot file unreadable"
	if got := storeErr.Error(); got != expectedErrorString {
		t.Errorf("StoreError.Error() = %v, want %v", got, expectedErrorString)
	}

	// Test Unwrap method
	if got := storeErr.Unwrap(); !errors.Is(got, originalErr) {
		t.Errorf("StoreError.Unwrap() not returning original error")
	}

	// Test errors.Is with the wrapped error
	if !errors.Is(storeErr, originalErr) {
		t.Errorf("errors.Is() not recognizing the wrapped error")
	}

	// Test Error method without a wrapped error
	bare := NewStoreError("reminder", "get", "missing id", nil)
	expectedBare := "get operation on reminder failed: missing id"
	if got := bare.Error(); got != expectedBare {
		t.Errorf("StoreError.Error() = %v, want %v", got, expectedBare)
	}
}
