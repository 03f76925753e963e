package core

import (
	"context"
	"io"
	"time"
)

// ReminderAnalyzer decides whether a captured note asks to be reminded
// of something at a specific future time. Implementations may fail; the
// capture path saves the memory regardless and creates no reminder.
type ReminderAnalyzer interface {
	AnalyzeReminder(ctx context.Context, text string, now time.Time) (ReminderIntent, error)
}

// Notifier presents a due reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}

// BlobStore is the remote single-object backup target.
type BlobStore interface {
	// Exists reports whether the named object is present.
	Exists(ctx context.Context, name string) (bool, error)
	// Put creates or overwrites the named object in place.
	Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	// Get downloads the named object's content.
	Get(ctx context.Context, name string) ([]byte, error)
}
