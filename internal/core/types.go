package core

const (
	AppName       = "remindme"
	AppVersion    = "0.1.0"
	RepositoryURL = "https://github.com/sandevgo/remindme"
)

const (
	// MemoriesKey and RemindersKey name the two persisted collections.
	MemoriesKey  = "remindme_ai_memories"
	RemindersKey = "remindme_ai_reminders"

	// StorageQuotaBytes is the fixed budget for the serialized memory
	// collection. 5MB matches the safe cross-browser localStorage limit
	// the original data was migrated from.
	StorageQuotaBytes = 5 * 1024 * 1024

	// StorageWarnRatio is the "nearly full" threshold.
	StorageWarnRatio = 0.9

	// ScheduleHorizonMillis caps how far ahead an in-process timer is
	// armed (~24 days). Reminders past the horizon stay persisted and
	// get re-armed on a later restart once the remaining delay shrinks.
	ScheduleHorizonMillis int64 = 2073600000

	// MissedGraceMillis: a reminder whose fire time passed within this
	// window still fires immediately; older misses are suppressed.
	MissedGraceMillis int64 = 60000

	// BackupObjectName is the well-known remote backup object.
	BackupObjectName = "remindme_memories.json"
)

// Memory is a single captured note. Immutable after creation.
type Memory struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// Reminder is a deferred notification tied to a memory. MemoryID is a
// lookup edge only; deleting the memory never cascades here.
type Reminder struct {
	ID        string `json:"id"`
	MemoryID  string `json:"memoryId"`
	Label     string `json:"label"`
	Timestamp int64  `json:"timestamp"` // target fire time, epoch millis
	Completed bool   `json:"completed"`
}

// StorageUsage is a derived snapshot, recomputed on demand.
type StorageUsage struct {
	UsedBytes int64   `json:"used_bytes"`
	Formatted string  `json:"formatted"`
	Percent   float64 `json:"percent"`
	IsFull    bool    `json:"is_full"`
}

// ReminderIntent is the analyzer verdict for a captured note.
type ReminderIntent struct {
	IsReminder bool   `json:"isReminder"`
	Timestamp  int64  `json:"timestamp,omitempty"`
	Label      string `json:"label,omitempty"`
}
