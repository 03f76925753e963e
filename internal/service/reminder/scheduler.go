package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/pkg/log"
)

// timerHandle is what an armed timer exposes to the scheduler. Satisfied
// by *time.Timer; tests substitute their own.
type timerHandle interface {
	Stop() bool
}

// Scheduler turns a reminder's future timestamp into a deferred
// notification. Persisted records live in the reminder store; the timer
// table here is ephemeral and rebuilt from the store on every start.
type Scheduler struct {
	repo    core.RemindersRepository
	trigger *Trigger

	mu     sync.Mutex
	timers map[string]timerHandle

	now       func() time.Time
	afterFunc func(d time.Duration, f func()) timerHandle
}

func NewScheduler(repo core.RemindersRepository, trigger *Trigger) *Scheduler {
	return &Scheduler{
		repo:    repo,
		trigger: trigger,
		timers:  make(map[string]timerHandle),
		now:     time.Now,
		afterFunc: func(d time.Duration, f func()) timerHandle {
			return time.AfterFunc(d, f)
		},
	}
}

// Schedule registers the reminder (idempotent) and decides its fate:
//   - future and within the horizon: arm a one-shot timer
//   - fire time passed within the last minute: fire immediately, the
//     process was likely down at fire time
//   - missed by more than a minute, or beyond the horizon: persisted
//     only, no timer. A later restart recomputes the remaining delay.
func (s *Scheduler) Schedule(ctx context.Context, reminder core.Reminder) error {
	if err := s.repo.Register(ctx, reminder); err != nil {
		return err
	}

	delay := reminder.Timestamp - s.now().UnixMilli()

	switch {
	case delay > 0 && delay < core.ScheduleHorizonMillis:
		s.arm(ctx, reminder, delay)
	case delay > -core.MissedGraceMillis && delay <= 0:
		s.trigger.Fire(ctx, reminder)
	default:
		log.FromCtx(ctx).Debug().
			Str("id", reminder.ID).
			Int64("delay_ms", delay).
			Msg("reminder left pending, no timer armed")
	}

	return nil
}

// RecoverPending rebuilds the timer table from the persisted records.
// Pure function of (store contents, now); safe to run at any start.
// Reminders whose fire time already passed are neither fired nor
// completed here: they stay pending, a known gap kept for compatibility
// with existing data.
func (s *Scheduler) RecoverPending(ctx context.Context) int {
	now := s.now().UnixMilli()
	armed := 0

	for _, reminder := range s.repo.List(ctx) {
		if reminder.Completed || reminder.Timestamp <= now {
			continue
		}
		s.arm(ctx, reminder, reminder.Timestamp-now)
		armed++
	}

	return armed
}

// arm is idempotent per reminder id: an already-armed reminder is never
// double-armed.
func (s *Scheduler) arm(ctx context.Context, reminder core.Reminder, delayMillis int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.timers[reminder.ID]; exists {
		return
	}

	// The timer outlives the scheduling call; detach its context from
	// request-scoped cancellation but keep the logger.
	fireCtx := context.WithoutCancel(ctx)

	s.timers[reminder.ID] = s.afterFunc(time.Duration(delayMillis)*time.Millisecond, func() {
		s.mu.Lock()
		delete(s.timers, reminder.ID)
		s.mu.Unlock()

		s.trigger.Fire(fireCtx, reminder)
	})

	log.FromCtx(ctx).Info().
		Str("id", reminder.ID).
		Str("label", reminder.Label).
		Int64("delay_ms", delayMillis).
		Msg("reminder armed")
}

// Start recovers still-pending reminders. Implements srv.Service.
func (s *Scheduler) Start(ctx context.Context) error {
	armed := s.RecoverPending(ctx)
	log.FromCtx(ctx).Info().Int("armed", armed).Msg("reminder scheduler started")
	return nil
}

// Shutdown discards all in-memory timers. Persisted pending state
// survives and is re-armed on the next start.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	return nil
}

// Armed reports whether an in-process timer is currently counting down
// for the given reminder id.
func (s *Scheduler) Armed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}
