package scheduler

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/notify"
)

// MockDispatcher is a simple implementation of the notify.Dispatcher
// interface for testing. It records every reminder it receives and delegates
// the outcome to DispatchFn.
type MockDispatcher struct {
	mu         sync.Mutex
	dispatched []uuid.UUID

	// DispatchFn determines the outcome of each dispatch. The default
	// accepts everything.
	DispatchFn func(ctx context.Context, reminder *domain.Reminder) error
}

var _ notify.Dispatcher = (*MockDispatcher)(nil)

// NewMockDispatcher creates a MockDispatcher that succeeds on every dispatch
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{
		DispatchFn: func(ctx context.Context, reminder *domain.Reminder) error { return nil },
	}
}

// Dispatch implements the notify.Dispatcher interface
func (d *MockDispatcher) Dispatch(ctx context.Context, reminder *domain.Reminder) error {
	d.mu.Lock()
	d.dispatched = append(d.dispatched, reminder.ID)
	d.mu.Unlock()

	return d.DispatchFn(ctx, reminder)
}

// Dispatched returns the ids of every reminder received so far, in order.
func (d *MockDispatcher) Dispatched() []uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]uuid.UUID, len(d.dispatched))
	copy(ids, d.dispatched)
	return ids
}

// DispatchCount returns how many reminders have been received so far.
func (d *MockDispatcher) DispatchCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dispatched)
}
