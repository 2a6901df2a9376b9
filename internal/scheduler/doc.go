// Package scheduler runs the background loop that delivers due reminders.
// It periodically scans the store for pending reminders whose trigger time
// has passed, dispatches each one through the notification registry, and
// marks the record sent or failed. The loop is a single cancellable
// goroutine with an idempotent Start and a bounded-grace Stop.
package scheduler
