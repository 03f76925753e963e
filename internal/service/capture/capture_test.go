package capture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/internal/service/memory"
	"github.com/sandevgo/remindme/internal/service/reminder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemoriesRepo struct {
	memories []core.Memory
	putErr   error
}

func (f *fakeMemoriesRepo) List(ctx context.Context) []core.Memory {
	return append([]core.Memory(nil), f.memories...)
}

func (f *fakeMemoriesRepo) Put(ctx context.Context, memories []core.Memory) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.memories = memories
	return nil
}

func (f *fakeMemoriesRepo) Clear(ctx context.Context) error {
	f.memories = nil
	return nil
}

type fakeRemindersRepo struct {
	mu        sync.Mutex
	reminders []core.Reminder
}

func (f *fakeRemindersRepo) List(ctx context.Context) []core.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.Reminder(nil), f.reminders...)
}

func (f *fakeRemindersRepo) Register(ctx context.Context, r core.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reminders {
		if existing.ID == r.ID {
			return nil
		}
	}
	f.reminders = append(f.reminders, r)
	return nil
}

func (f *fakeRemindersRepo) MarkCompleted(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			f.reminders[i].Completed = true
		}
	}
	return nil
}

func (f *fakeRemindersRepo) PendingCount(ctx context.Context, nowMillis int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.reminders {
		if !r.Completed && r.Timestamp > nowMillis {
			count++
		}
	}
	return count
}

type stubAnalyzer struct {
	intent core.ReminderIntent
	err    error
}

func (s stubAnalyzer) AnalyzeReminder(ctx context.Context, text string, now time.Time) (core.ReminderIntent, error) {
	return s.intent, s.err
}

func newPipeline(memRepo *fakeMemoriesRepo, remRepo *fakeRemindersRepo, analyzer core.ReminderAnalyzer) (*Service, *reminder.Scheduler) {
	memories := memory.NewStore(memRepo)
	sched := reminder.NewScheduler(remRepo, reminder.NewTrigger(remRepo, nil))
	return NewService(memories, sched, nil, analyzer), sched
}

func TestCapture_ReminderIntentEndToEnd(t *testing.T) {
	memRepo := &fakeMemoriesRepo{}
	remRepo := &fakeRemindersRepo{}
	now := time.Now()

	// "Buy milk tomorrow at 9am": the analyzer resolves it to T+24h.
	analyzer := stubAnalyzer{intent: core.ReminderIntent{
		IsReminder: true,
		Timestamp:  now.UnixMilli() + 86_400_000,
		Label:      "Buy milk",
	}}

	svc, sched := newPipeline(memRepo, remRepo, analyzer)
	defer sched.Shutdown(context.Background())
	ctx := context.Background()

	result, err := svc.Capture(ctx, "Buy milk tomorrow at 9am")
	require.NoError(t, err)

	// Memory Store gained one record.
	require.Len(t, memRepo.memories, 1)
	assert.Equal(t, "Buy milk tomorrow at 9am", memRepo.memories[0].Content)

	// Reminder Store gained one pending record with the analyzer's timestamp.
	require.NotNil(t, result.Reminder)
	stored := remRepo.List(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, "Buy milk", stored[0].Label)
	assert.Equal(t, now.UnixMilli()+86_400_000, stored[0].Timestamp)
	assert.False(t, stored[0].Completed)
	assert.Equal(t, result.Memory.ID, stored[0].MemoryID)

	// A timer is armed for the ~24h delay.
	assert.True(t, sched.Armed(result.Reminder.ID))
}

func TestCapture_NoReminderIntent(t *testing.T) {
	memRepo := &fakeMemoriesRepo{}
	remRepo := &fakeRemindersRepo{}
	svc, sched := newPipeline(memRepo, remRepo, stubAnalyzer{intent: core.ReminderIntent{IsReminder: false}})
	defer sched.Shutdown(context.Background())

	result, err := svc.Capture(context.Background(), "just a thought")
	require.NoError(t, err)
	assert.Nil(t, result.Reminder)
	assert.Empty(t, remRepo.List(context.Background()))
}

func TestCapture_AnalyzerFailureStillSaves(t *testing.T) {
	memRepo := &fakeMemoriesRepo{}
	remRepo := &fakeRemindersRepo{}
	svc, sched := newPipeline(memRepo, remRepo, stubAnalyzer{err: errors.New("model offline")})
	defer sched.Shutdown(context.Background())

	result, err := svc.Capture(context.Background(), "call the dentist friday")
	require.NoError(t, err, "analysis failure must not fail the save")
	assert.True(t, result.AnalysisFailed)
	assert.Nil(t, result.Reminder)
	assert.Len(t, memRepo.memories, 1)
}

func TestCapture_NilAnalyzerIsSaveOnly(t *testing.T) {
	memRepo := &fakeMemoriesRepo{}
	remRepo := &fakeRemindersRepo{}
	svc, sched := newPipeline(memRepo, remRepo, nil)
	defer sched.Shutdown(context.Background())

	result, err := svc.Capture(context.Background(), "plain note")
	require.NoError(t, err)
	assert.Nil(t, result.Reminder)
	assert.False(t, result.AnalysisFailed)
}

func TestCapture_EmptyNoteRejected(t *testing.T) {
	svc, sched := newPipeline(&fakeMemoriesRepo{}, &fakeRemindersRepo{}, nil)
	defer sched.Shutdown(context.Background())

	_, err := svc.Capture(context.Background(), "   \n ")
	assert.ErrorIs(t, err, ErrEmptyNote)
}

func TestCapture_StorageFullPropagates(t *testing.T) {
	memRepo := &fakeMemoriesRepo{putErr: core.ErrStorageFull}
	svc, sched := newPipeline(memRepo, &fakeRemindersRepo{}, nil)
	defer sched.Shutdown(context.Background())

	_, err := svc.Capture(context.Background(), "one note too many")
	assert.ErrorIs(t, err, core.ErrStorageFull)
}
