package sqlite

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/pkg/log"
)

// RemindersRepo keeps the reminder collection as one keyed blob in
// insertion order. Read-modify-write sequences are serialized with a
// mutex: armed timers fire on their own goroutines and mutate the
// collection independently.
type RemindersRepo struct {
	kv *KV
	mu sync.Mutex
}

func NewRemindersRepo(kv *KV) *RemindersRepo {
	return &RemindersRepo{kv: kv}
}

func (r *RemindersRepo) List(ctx context.Context) []core.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Register appends the reminder unless one with the same id already
// exists. Idempotency guards against double-scheduling from duplicate
// calls.
func (r *RemindersRepo) Register(ctx context.Context, reminder core.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.load(ctx)
	for _, existing := range all {
		if existing.ID == reminder.ID {
			return nil
		}
	}
	return r.store(ctx, append(all, reminder))
}

// MarkCompleted flips completed on the matching reminder. Absent ids are
// a no-op, not an error.
func (r *RemindersRepo) MarkCompleted(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.load(ctx)
	changed := false
	for i := range all {
		if all[i].ID == id && !all[i].Completed {
			all[i].Completed = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.store(ctx, all)
}

func (r *RemindersRepo) PendingCount(ctx context.Context, nowMillis int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, reminder := range r.load(ctx) {
		if !reminder.Completed && reminder.Timestamp > nowMillis {
			count++
		}
	}
	return count
}

func (r *RemindersRepo) load(ctx context.Context) []core.Reminder {
	data, err := r.kv.Get(ctx, core.RemindersKey)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to read reminders, degrading to empty")
		return []core.Reminder{}
	}
	if len(data) == 0 {
		return []core.Reminder{}
	}

	var reminders []core.Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to parse reminders, degrading to empty")
		return []core.Reminder{}
	}
	if reminders == nil {
		return []core.Reminder{}
	}
	return reminders
}

func (r *RemindersRepo) store(ctx context.Context, reminders []core.Reminder) error {
	data, err := json.Marshal(reminders)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, core.RemindersKey, data)
}
