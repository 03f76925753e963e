package reminder

import (
	"context"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/pkg/log"
)

// Trigger presents a due reminder and records completion. The platform
// notifier is optional; without one the alert degrades to a log line.
// Completion is written regardless of whether presentation succeeded.
type Trigger struct {
	repo     core.RemindersRepository
	notifier core.Notifier
}

func NewTrigger(repo core.RemindersRepository, notifier core.Notifier) *Trigger {
	return &Trigger{repo: repo, notifier: notifier}
}

// SetNotifier attaches the platform notifier. Call during wiring, before
// any timer is armed.
func (t *Trigger) SetNotifier(notifier core.Notifier) {
	t.notifier = notifier
}

func (t *Trigger) Fire(ctx context.Context, reminder core.Reminder) {
	logger := log.FromCtx(ctx)

	if t.notifier != nil {
		if err := t.notifier.Notify(ctx, reminder); err != nil {
			logger.Error().Err(err).Str("id", reminder.ID).Msg("failed to deliver reminder notification")
		}
	} else {
		// Fallback alert when no notification channel is configured.
		logger.Warn().Str("id", reminder.ID).Msgf("🔔 REMINDER: %s", reminder.Label)
	}

	if err := t.repo.MarkCompleted(ctx, reminder.ID); err != nil {
		logger.Error().Err(err).Str("id", reminder.ID).Msg("failed to mark reminder completed")
	}
}
