// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects, the reminder
// store (defined in internal/store), and the snapshot persistence layer to
// fulfill application features.
//
// Key components:
//
// 1. ReminderService:
//   - Owns the create/dismiss/remove use cases and the status transition
//     rules that the raw store does not enforce (dismissal is only legal
//     from pending)
//   - Computes the urgency/workload insight report
//   - Coordinates snapshot save and restore against the store
//
// 2. SnapshotJob:
//   - Invokes the snapshot save use case on a cron schedule
//
// 3. Error Handling:
//   - Translates store-level errors to service-level sentinels
//   - Wraps unexpected errors in ReminderServiceError for API responses
//
// The service layer depends on domain entities and the store interface, but
// never on specific infrastructure implementations.
package service
