package core

import "context"

// MemoriesRepository owns the persisted memory collection, newest-first.
// Read-path corruption degrades to an empty collection; write-path
// failures propagate.
type MemoriesRepository interface {
	List(ctx context.Context) []Memory
	Put(ctx context.Context, memories []Memory) error
	Clear(ctx context.Context) error
}

// RemindersRepository owns the persisted reminder collection, insertion
// order.
type RemindersRepository interface {
	List(ctx context.Context) []Reminder
	// Register appends unless a reminder with the same ID already exists.
	Register(ctx context.Context, reminder Reminder) error
	// MarkCompleted flips completed on the matching reminder; no-op if absent.
	MarkCompleted(ctx context.Context, id string) error
	// PendingCount counts reminders that are not completed and still in
	// the future relative to nowMillis.
	PendingCount(ctx context.Context, nowMillis int64) int
}
