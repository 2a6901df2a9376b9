// Package store defines interfaces for reminder persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, allowing the scheduler and services to remain
// independent of whether reminders live in memory, on disk, or elsewhere.
package store
