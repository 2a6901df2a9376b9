package insight

import (
	"sort"
	"strconv"
	"time"

	"github.com/deadlineai/remind-api/internal/domain"
)

// Urgency scoring constants. The score is bounded to [0, 100]; the near-term
// boost kicks in inside the final 24 hours before a deadline.
const (
	maxUrgencyScore  = 100.0
	effortScale      = 50.0
	nearTermHours    = 24.0
	nearTermDivisor  = 10.0
	heavyDayHours    = 10.0
	focusListLimit   = 5
	topPriorityCount = 5
)

// Workload groups outstanding effort (estimated hours) by proximity of the
// underlying deadline.
type Workload struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"this_week"`
	ThisMonth float64 `json:"this_month"`
	Overdue   float64 `json:"overdue"`
}

// Recommendation is a single piece of generated advice.
type Recommendation struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// RankedReminder pairs a reminder with its computed urgency score.
type RankedReminder struct {
	Reminder     *domain.Reminder `json:"reminder"`
	UrgencyScore float64          `json:"urgency_score"`
}

// Summary holds headline counts for a reminder set.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Sent      int `json:"sent"`
	Dismissed int `json:"dismissed"`
	Failed    int `json:"failed"`
	Overdue   int `json:"overdue"`
}

// Report bundles every insight for one point in time.
type Report struct {
	GeneratedAt         time.Time        `json:"generated_at"`
	Summary             Summary          `json:"summary"`
	Workload            Workload         `json:"workload"`
	NextDeadline        *time.Time       `json:"next_deadline,omitempty"`
	PriorityList        []RankedReminder `json:"priority_list"`
	Recommendations     []Recommendation `json:"recommendations"`
	EstimatedCompletion *time.Time       `json:"estimated_completion,omitempty"`
}

// Calculator derives urgency, workload, and recommendation insights from a
// set of reminders. All methods are pure: they take the current time
// explicitly and never mutate their inputs.
type Calculator struct {
	params *Params
}

// NewDefaultCalculator creates a Calculator with default parameters
func NewDefaultCalculator() *Calculator {
	return &Calculator{params: NewDefaultParams()}
}

// NewCalculator creates a Calculator with custom parameters
func NewCalculator(params *Params) *Calculator {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Calculator{params: params}
}

// UrgencyScore computes the urgency of a single reminder on a 0-100 scale.
// Non-pending reminders score zero; a deadline already passed scores 100.
// Otherwise the score combines estimated effort against remaining time, a
// boost when the deadline is under 24 hours away, and the priority weight
// from metadata.
func (c *Calculator) UrgencyScore(reminder *domain.Reminder, now time.Time) float64 {
	if !reminder.IsPending() {
		return 0.0
	}

	hoursRemaining := reminder.DeadlineAt.Sub(now).Hours()
	if hoursRemaining <= 0 {
		return maxUrgencyScore
	}

	estimatedHours := c.estimatedHours(reminder)

	denominator := hoursRemaining
	if denominator < 1 {
		denominator = 1
	}

	urgency := (estimatedHours / denominator) * effortScale
	if hoursRemaining < nearTermHours {
		urgency += (maxUrgencyScore - hoursRemaining) / nearTermDivisor
	}
	urgency += c.params.priorityWeight(c.priority(reminder))

	if urgency > maxUrgencyScore {
		return maxUrgencyScore
	}
	return urgency
}

// WorkloadDistribution groups the estimated hours of pending reminders into
// overdue/today/this-week/this-month buckets relative to now.
func (c *Calculator) WorkloadDistribution(reminders []*domain.Reminder, now time.Time) Workload {
	var workload Workload

	for _, reminder := range reminders {
		if !reminder.IsPending() {
			continue
		}

		hours := c.estimatedHours(reminder)
		remaining := reminder.DeadlineAt.Sub(now).Hours()

		switch {
		case remaining < 0:
			workload.Overdue += hours
		case remaining <= 24:
			workload.Today += hours
		case remaining <= 7*24:
			workload.ThisWeek += hours
		default:
			workload.ThisMonth += hours
		}
	}

	return workload
}

// PrioritizedOrder returns the pending reminders sorted by urgency,
// most urgent first, with earlier deadlines breaking ties.
func (c *Calculator) PrioritizedOrder(reminders []*domain.Reminder, now time.Time) []RankedReminder {
	ranked := make([]RankedReminder, 0, len(reminders))
	for _, reminder := range reminders {
		if !reminder.IsPending() {
			continue
		}
		ranked = append(ranked, RankedReminder{
			Reminder:     reminder,
			UrgencyScore: c.UrgencyScore(reminder, now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].UrgencyScore != ranked[j].UrgencyScore {
			return ranked[i].UrgencyScore > ranked[j].UrgencyScore
		}
		return ranked[i].Reminder.DeadlineAt.Before(ranked[j].Reminder.DeadlineAt)
	})

	return ranked
}

// EstimateCompletion projects when all pending work could be finished at the
// configured daily capacity. The second return value is false when some
// deadline falls before the projected completion, meaning the workload does
// not fit.
func (c *Calculator) EstimateCompletion(
	reminders []*domain.Reminder,
	now time.Time,
) (time.Time, bool) {
	var totalHours float64
	pending := make([]*domain.Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		if !reminder.IsPending() {
			continue
		}
		pending = append(pending, reminder)
		totalHours += c.estimatedHours(reminder)
	}

	if totalHours == 0 {
		return now, true
	}

	daysNeeded := totalHours / c.params.DailyCapacityHours
	completion := now.Add(time.Duration(daysNeeded * 24 * float64(time.Hour)))

	for _, reminder := range pending {
		if reminder.DeadlineAt.Before(completion) {
			return time.Time{}, false
		}
	}

	return completion, true
}

// Recommendations produces advice strings derived from the current workload:
// overdue deadlines, an overloaded day, too many open items, and a workload
// that exceeds the available time before its deadlines.
func (c *Calculator) Recommendations(reminders []*domain.Reminder, now time.Time) []Recommendation {
	var recommendations []Recommendation

	overdue := 0
	pending := 0
	for _, reminder := range reminders {
		if !reminder.IsPending() {
			continue
		}
		pending++
		if reminder.DeadlineAt.Before(now) {
			overdue++
		}
	}

	if overdue > 0 {
		recommendations = append(recommendations, Recommendation{
			Type:     "critical",
			Category: "overdue",
			Message: "You have " + strconv.Itoa(overdue) +
				" overdue deadline(s). Prioritize completing them immediately.",
			Priority: PriorityCritical,
		})
	}

	workload := c.WorkloadDistribution(reminders, now)
	if workload.Today > heavyDayHours {
		recommendations = append(recommendations, Recommendation{
			Type:     "warning",
			Category: "heavy_workload",
			Message: "You have " + strconv.FormatFloat(workload.Today, 'f', 1, 64) +
				" hours of work due today. Consider adjusting your schedule.",
			Priority: PriorityHigh,
		})
	}

	if pending > focusListLimit {
		recommendations = append(recommendations, Recommendation{
			Type:     "info",
			Category: "focus",
			Message:  "Consider focusing on your top 3 priorities to avoid feeling overwhelmed.",
			Priority: PriorityMedium,
		})
	}

	if _, ok := c.EstimateCompletion(reminders, now); !ok {
		recommendations = append(recommendations, Recommendation{
			Type:     "warning",
			Category: "capacity",
			Message:  "Your current workload exceeds available time. Consider renegotiating deadlines.",
			Priority: PriorityHigh,
		})
	}

	return recommendations
}

// Report assembles the full insight report for a reminder set at one point
// in time.
func (c *Calculator) Report(reminders []*domain.Reminder, now time.Time) Report {
	report := Report{
		GeneratedAt:     now,
		Workload:        c.WorkloadDistribution(reminders, now),
		Recommendations: c.Recommendations(reminders, now),
	}

	for _, reminder := range reminders {
		report.Summary.Total++
		switch reminder.Status {
		case domain.ReminderStatusPending:
			report.Summary.Pending++
			if reminder.DeadlineAt.Before(now) {
				report.Summary.Overdue++
			}
		case domain.ReminderStatusSent:
			report.Summary.Sent++
		case domain.ReminderStatusDismissed:
			report.Summary.Dismissed++
		case domain.ReminderStatusFailed:
			report.Summary.Failed++
		}
	}

	if next, ok := c.nextDeadline(reminders, now); ok {
		report.NextDeadline = &next
	}

	ranked := c.PrioritizedOrder(reminders, now)
	if len(ranked) > topPriorityCount {
		ranked = ranked[:topPriorityCount]
	}
	report.PriorityList = ranked

	if completion, ok := c.EstimateCompletion(reminders, now); ok {
		report.EstimatedCompletion = &completion
	}

	return report
}

// nextDeadline finds the earliest pending deadline that has not yet passed.
func (c *Calculator) nextDeadline(
	reminders []*domain.Reminder,
	now time.Time,
) (time.Time, bool) {
	var next time.Time
	found := false
	for _, reminder := range reminders {
		if !reminder.IsPending() || reminder.DeadlineAt.Before(now) {
			continue
		}
		if !found || reminder.DeadlineAt.Before(next) {
			next = reminder.DeadlineAt
			found = true
		}
	}
	return next, found
}

// priority reads the priority label from reminder metadata.
func (c *Calculator) priority(reminder *domain.Reminder) string {
	value, ok := reminder.Metadata["priority"]
	if !ok {
		return ""
	}
	label, ok := value.(string)
	if !ok {
		return ""
	}
	return label
}

// estimatedHours reads the effort estimate from reminder metadata, tolerating
// the numeric shapes JSON decoding produces.
func (c *Calculator) estimatedHours(reminder *domain.Reminder) float64 {
	value, ok := reminder.Metadata["estimated_hours"]
	if !ok {
		return c.params.DefaultEstimatedHours
	}

	switch v := value.(type) {
	case float64:
		if v > 0 {
			return v
		}
	case int:
		if v > 0 {
			return float64(v)
		}
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			return parsed
		}
	}

	return c.params.DefaultEstimatedHours
}
