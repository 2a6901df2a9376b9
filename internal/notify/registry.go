package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/deadlineai/remind-api/internal/domain"
)

// Registry is a simple implementation of the Dispatcher interface that
// holds one handler per channel tag in memory.
type Registry struct {
	handlers map[domain.Channel]Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewRegistry creates a new empty handler registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		handlers: make(map[domain.Channel]Handler),
		logger:   logger.With("component", "notify_registry"),
	}
}

// Ensure Registry implements the Dispatcher interface
var _ Dispatcher = (*Registry)(nil)

// Register installs the handler for the given channel, replacing any
// handler previously registered for it.
func (r *Registry) Register(channel domain.Channel, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[channel] = handler
	r.logger.Debug("registered notification handler",
		"channel", string(channel),
		"handler_count", len(r.handlers))
}

// Channels returns the sorted list of channels with a registered handler.
func (r *Registry) Channels() []domain.Channel {
	r.mu.RLock()
	channels := make([]domain.Channel, 0, len(r.handlers))
	for channel := range r.handlers {
		channels = append(channels, channel)
	}
	r.mu.RUnlock()

	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })
	return channels
}

// Dispatch routes the reminder to the handler registered for its channel
// and invokes it synchronously. An unknown channel yields ErrNoHandler. A
// panicking handler is recovered and reported as an error, so a broken
// transport can never take down the caller.
func (r *Registry) Dispatch(ctx context.Context, reminder *domain.Reminder) (err error) {
	r.mu.RLock()
	handler, ok := r.handlers[reminder.Channel]
	r.mu.RUnlock()

	if !ok {
		r.logger.Warn("no handler registered for channel",
			"channel", string(reminder.Channel),
			"reminder_id", reminder.ID.String())
		return fmt.Errorf("%w: %s", ErrNoHandler, reminder.Channel)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("notification handler panicked",
				"panic", rec,
				"channel", string(reminder.Channel),
				"reminder_id", reminder.ID.String())
			err = fmt.Errorf("%w: channel %s: %v", ErrHandlerPanic, reminder.Channel, rec)
		}
	}()

	if handlerErr := handler.Notify(ctx, reminder); handlerErr != nil {
		r.logger.Error("notification handler failed",
			"error", handlerErr,
			"channel", string(reminder.Channel),
			"reminder_id", reminder.ID.String())
		return fmt.Errorf("handler for channel %s failed: %w", reminder.Channel, handlerErr)
	}

	r.logger.Debug("notification dispatched",
		"channel", string(reminder.Channel),
		"reminder_id", reminder.ID.String())
	return nil
}
