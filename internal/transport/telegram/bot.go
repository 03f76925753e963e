package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/remindme/internal/config"
	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/internal/service/capture"
	"github.com/sandevgo/remindme/internal/service/memory"
	"github.com/sandevgo/remindme/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

const recentLimit = 10

// Bot is the capture transport: every plain text message from the owner
// runs through the capture pipeline. It doubles as the platform notifier
// for due reminders.
type Bot struct {
	bot       *tele.Bot
	cfg       *config.TelegramConfig
	capture   *capture.Service
	memories  *memory.Store
	reminders core.RemindersRepository
	ownerID   int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	captureSvc *capture.Service,
	memories *memory.Store,
	reminders core.RemindersRepository,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		cfg:       cfg,
		capture:   captureSvc,
		memories:  memories,
		reminders: reminders,
		ownerID:   cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/status", bot.handleStatus)
	b.Handle("/recent", bot.handleRecent)
	b.Handle(tele.OnText, bot.handleNote)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// Notify implements core.Notifier: due reminders ring the owner chat.
func (b *Bot) Notify(ctx context.Context, reminder core.Reminder) error {
	recipient := &tele.User{ID: b.ownerID}
	_, err := b.bot.Send(recipient, fmt.Sprintf("🔔 REMINDER: %s", reminder.Label))
	if err != nil {
		return fmt.Errorf("failed to send reminder notification: %w", err)
	}
	return nil
}

func (b *Bot) handleNote(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	result, err := b.capture.Capture(ctx, c.Text())
	if err != nil {
		if errors.Is(err, core.ErrStorageFull) {
			return c.Send("ERROR: Storage Full. Please clear space.")
		}
		if errors.Is(err, capture.ErrEmptyNote) {
			return nil
		}
		logger.Error().Err(err).Msg("capture failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	return c.Send(feedbackFor(result))
}

func feedbackFor(result capture.Result) string {
	if result.Reminder != nil {
		at := time.UnixMilli(result.Reminder.Timestamp)
		return fmt.Sprintf("Reminder set for %s!", at.Format("15:04"))
	}
	if result.StorageWarning {
		return "Memory saved. Warning: storage almost full!"
	}
	if result.AnalysisFailed {
		return "Memory saved (Analysis failed)"
	}
	return "Memory saved!"
}

func (b *Bot) handleStatus(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	usage := b.memories.Usage(ctx)
	pending := b.reminders.PendingCount(ctx, time.Now().UnixMilli())

	return c.Send(fmt.Sprintf(
		"Memories: %d\nStorage: %s (%.1f%%)\nPending reminders: %d",
		len(b.memories.List(ctx)), usage.Formatted, usage.Percent, pending,
	))
}

func (b *Bot) handleRecent(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	memories := b.memories.List(ctx)
	if len(memories) == 0 {
		return c.Send("No memories yet. Send me a note to get started!")
	}
	if len(memories) > recentLimit {
		memories = memories[:recentLimit]
	}

	var sb strings.Builder
	sb.WriteString("Recent memories:\n")
	for i, mem := range memories {
		saved := time.UnixMilli(mem.Timestamp).Format("Jan 02 15:04")
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, mem.Content, saved))
	}
	return c.Send(sb.String())
}
