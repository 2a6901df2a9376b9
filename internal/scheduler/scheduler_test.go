package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/notify"
	"github.com/deadlineai/remind-api/internal/platform/memory"
	"github.com/deadlineai/remind-api/internal/store"
)

func TestScheduler_DispatchesDueReminder(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)
	dispatcher := NewMockDispatcher()

	dispatchedChan := make(chan uuid.UUID, 5)
	dispatcher.DispatchFn = func(ctx context.Context, reminder *domain.Reminder) error {
		dispatchedChan <- reminder.ID
		return nil
	}

	reminder := addSchedulerReminder(
		t, reminderStore, time.Now().UTC().Add(-time.Minute), domain.ChannelEmail,
	)

	sched := NewScheduler(reminderStore, dispatcher, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Start()
	defer sched.Stop()

	// The first scan runs immediately, so the due reminder goes out well
	// before the first interval elapses
	select {
	case id := <-dispatchedChan:
		assert.Equal(t, reminder.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for reminder to be dispatched")
	}

	waitForStatus(t, reminderStore, reminder.ID, domain.ReminderStatusSent)

	sched.Stop()
	assert.False(t, sched.Running())

	// Sent is terminal, so the reminder was handed over exactly once
	assert.Equal(t, []uuid.UUID{reminder.ID}, dispatcher.Dispatched())
}

func TestScheduler_SkipsFutureReminder(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)
	dispatcher := NewMockDispatcher()

	reminder := addSchedulerReminder(
		t, reminderStore, time.Now().UTC().Add(time.Hour), domain.ChannelEmail,
	)

	sched := NewScheduler(reminderStore, dispatcher, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Start()

	// Let several scans run
	time.Sleep(250 * time.Millisecond)
	sched.Stop()

	assert.Equal(t, 0, dispatcher.DispatchCount())

	current, err := reminderStore.Get(context.Background(), reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusPending, current.Status)
}

func TestScheduler_MarksFailedAndContinues(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)
	dispatcher := NewMockDispatcher()

	dispatchedChan := make(chan uuid.UUID, 5)
	dispatcher.DispatchFn = func(ctx context.Context, reminder *domain.Reminder) error {
		dispatchedChan <- reminder.ID
		if reminder.Channel == domain.ChannelSMS {
			return errors.New("sms gateway unavailable")
		}
		return nil
	}

	trigger := time.Now().UTC().Add(-time.Minute)
	smsReminder := addSchedulerReminder(t, reminderStore, trigger, domain.ChannelSMS)
	emailReminder := addSchedulerReminder(t, reminderStore, trigger, domain.ChannelEmail)

	sched := NewScheduler(reminderStore, dispatcher, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Start()
	defer sched.Stop()

	// Both reminders go out in the same tick; the sms failure must not
	// keep the email one from being processed
	for i := 0; i < 2; i++ {
		select {
		case <-dispatchedChan:
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for reminders to be dispatched")
		}
	}

	waitForStatus(t, reminderStore, smsReminder.ID, domain.ReminderStatusFailed)
	waitForStatus(t, reminderStore, emailReminder.ID, domain.ReminderStatusSent)

	failed, err := reminderStore.Get(context.Background(), smsReminder.ID)
	require.NoError(t, err)
	assert.Contains(t, failed.LastError, "sms gateway unavailable")
}

func TestScheduler_UnknownChannelMarksFailed(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)

	// Real registry with the default handlers installed
	registry := notify.NewRegistry(logger)
	notify.RegisterDefaults(registry, logger)

	trigger := time.Now().UTC().Add(-time.Minute)
	unknownReminder := addSchedulerReminder(t, reminderStore, trigger, domain.Channel("pager"))
	emailReminder := addSchedulerReminder(t, reminderStore, trigger, domain.ChannelEmail)

	sched := NewScheduler(reminderStore, registry, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Start()
	defer sched.Stop()

	waitForStatus(t, reminderStore, unknownReminder.ID, domain.ReminderStatusFailed)
	waitForStatus(t, reminderStore, emailReminder.ID, domain.ReminderStatusSent)

	failed, err := reminderStore.Get(context.Background(), unknownReminder.ID)
	require.NoError(t, err)
	assert.Contains(t, failed.LastError, "no handler registered")
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)
	dispatcher := NewMockDispatcher()

	reminder := addSchedulerReminder(
		t, reminderStore, time.Now().UTC().Add(-time.Minute), domain.ChannelEmail,
	)

	sched := NewScheduler(reminderStore, dispatcher, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Start()
	sched.Start()
	assert.True(t, sched.Running())

	waitForStatus(t, reminderStore, reminder.ID, domain.ReminderStatusSent)

	// A second loop would have raced the first over the same pending record
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, dispatcher.DispatchCount())

	sched.Stop()
	assert.False(t, sched.Running())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	sched := NewScheduler(memory.NewMemoryReminderStore(logger), NewMockDispatcher(), Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Stop()
	sched.Stop()
	assert.False(t, sched.Running())
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)
	dispatcher := NewMockDispatcher()

	sched := NewScheduler(reminderStore, dispatcher, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Start()
	sched.Stop()
	assert.False(t, sched.Running())

	// Reminders added while stopped stay put
	reminder := addSchedulerReminder(
		t, reminderStore, time.Now().UTC().Add(-time.Minute), domain.ChannelEmail,
	)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0, dispatcher.DispatchCount())

	// A fresh Start picks them up again
	sched.Start()
	defer sched.Stop()

	waitForStatus(t, reminderStore, reminder.ID, domain.ReminderStatusSent)
	assert.Equal(t, 1, dispatcher.DispatchCount())
}

func TestScheduler_SkipsRemindersDismissedMidTick(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)
	dispatcher := NewMockDispatcher()

	trigger := time.Now().UTC().Add(-time.Minute)
	first := addSchedulerReminder(t, reminderStore, trigger, domain.ChannelEmail)
	second := addSchedulerReminder(t, reminderStore, trigger, domain.ChannelEmail)

	// Whichever reminder is dispatched first dismisses the other, the way a
	// concurrent API caller would between the scan and the dispatch
	dispatchedChan := make(chan uuid.UUID, 5)
	dispatcher.DispatchFn = func(ctx context.Context, reminder *domain.Reminder) error {
		other := first.ID
		if reminder.ID == first.ID {
			other = second.ID
		}
		require.NoError(t, reminderStore.UpdateStatus(
			ctx, other, domain.ReminderStatusDismissed, "",
		))
		dispatchedChan <- reminder.ID
		return nil
	}

	sched := NewScheduler(reminderStore, dispatcher, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: time.Second,
	}, logger)

	sched.Start()
	defer sched.Stop()

	var dispatchedID uuid.UUID
	select {
	case dispatchedID = <-dispatchedChan:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for first dispatch")
	}

	waitForStatus(t, reminderStore, dispatchedID, domain.ReminderStatusSent)

	// The dismissed reminder is skipped by the pre-dispatch re-read and
	// never reaches the dispatcher
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, dispatcher.DispatchCount())

	otherID := first.ID
	if dispatchedID == first.ID {
		otherID = second.ID
	}
	other, err := reminderStore.Get(context.Background(), otherID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusDismissed, other.Status)
}

func TestScheduler_StopTimesOutOnBlockedDispatch(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	reminderStore := memory.NewMemoryReminderStore(logger)
	dispatcher := NewMockDispatcher()

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	dispatcher.DispatchFn = func(ctx context.Context, reminder *domain.Reminder) error {
		entered <- struct{}{}
		<-release
		return nil
	}

	addSchedulerReminder(t, reminderStore, time.Now().UTC().Add(-time.Minute), domain.ChannelEmail)

	sched := NewScheduler(reminderStore, dispatcher, Config{
		Interval:    50 * time.Millisecond,
		StopTimeout: 50 * time.Millisecond,
	}, logger)

	sched.Start()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for dispatch to begin")
	}

	// The loop is blocked inside the dispatcher, so Stop can only wait out
	// its grace period
	stopStarted := time.Now()
	sched.Stop()
	elapsed := time.Since(stopStarted)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 400*time.Millisecond)
	assert.False(t, sched.Running())

	// Unblock the abandoned dispatch so the goroutine can exit
	close(release)
}

// Helper to create a pending reminder and add it to the store
func addSchedulerReminder(
	t *testing.T,
	reminderStore store.ReminderStore,
	trigger time.Time,
	channel domain.Channel,
) *domain.Reminder {
	t.Helper()

	reminder, err := domain.NewReminder(domain.NewReminderParams{
		DeadlineID: uuid.New(),
		Title:      "write weekly report",
		DeadlineAt: trigger.Add(time.Hour),
		TriggerAt:  trigger,
		Channel:    channel,
		Recipient:  "user@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, reminderStore.Add(context.Background(), reminder))

	return reminder
}

// Helper that polls the store until the reminder reaches the wanted status
func waitForStatus(
	t *testing.T,
	reminderStore store.ReminderStore,
	id uuid.UUID,
	want domain.ReminderStatus,
) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		reminder, err := reminderStore.Get(context.Background(), id)
		require.NoError(t, err)
		if reminder.Status == want {
			return
		}

		select {
		case <-deadline:
			t.Fatalf("Timed out waiting for reminder %s to reach status %s (currently %s)",
				id, want, reminder.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
