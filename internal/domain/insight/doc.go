// Package insight implements the urgency and workload analysis formulas for
// reminders. It is a pure calculation package: every function takes the
// current time explicitly and derives scores, groupings, and recommendations
// from reminder deadlines and the optional priority and estimated_hours
// metadata keys.
package insight
