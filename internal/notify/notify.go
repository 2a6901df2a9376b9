package notify

import (
	"context"
	"errors"

	"github.com/deadlineai/remind-api/internal/domain"
)

// Common dispatch errors.
var (
	// ErrNoHandler is returned when a reminder's channel has no registered
	// handler. The reminder is not delivered anywhere.
	ErrNoHandler = errors.New("no handler registered for channel")

	// ErrHandlerPanic is returned when a handler panicked while processing
	// a reminder. The panic is contained inside Dispatch.
	ErrHandlerPanic = errors.New("notification handler panicked")
)

// Handler delivers a single reminder over one notification channel.
// Implementations are invoked synchronously by the dispatcher and must
// return an error rather than panic when delivery fails.
type Handler interface {
	// Notify delivers the reminder within the provided context.
	// Returns an error if the notification cannot be delivered.
	Notify(ctx context.Context, reminder *domain.Reminder) error
}

// Dispatcher routes reminders to the handler registered for their channel.
// This allows the scheduler to fire notifications without direct knowledge
// of the transports behind them.
type Dispatcher interface {
	// Dispatch routes the reminder to its channel's handler and reports
	// the delivery outcome. Returns ErrNoHandler for unknown channels.
	Dispatch(ctx context.Context, reminder *domain.Reminder) error
}
