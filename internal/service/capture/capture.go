package capture

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/internal/service/backup"
	"github.com/sandevgo/remindme/internal/service/memory"
	"github.com/sandevgo/remindme/internal/service/reminder"
	"github.com/sandevgo/remindme/pkg/log"
)

var ErrEmptyNote = errors.New("note is empty")

// Result tells the transport what happened to a captured note so it can
// phrase the feedback.
type Result struct {
	Memory         core.Memory
	Reminder       *core.Reminder
	StorageWarning bool
	AnalysisFailed bool
}

// Service is the capture pipeline: persist the note, hand the updated
// collection to the background uploader, ask the analyzer for reminder
// intent, and schedule one when found. Only the local save can fail the
// pipeline; everything downstream degrades.
type Service struct {
	memories  *memory.Store
	scheduler *reminder.Scheduler
	uploader  *backup.Uploader
	analyzer  core.ReminderAnalyzer
	now       func() time.Time
}

// NewService wires the pipeline. uploader and analyzer are optional;
// without them capture is save-only.
func NewService(
	memories *memory.Store,
	scheduler *reminder.Scheduler,
	uploader *backup.Uploader,
	analyzer core.ReminderAnalyzer,
) *Service {
	return &Service{
		memories:  memories,
		scheduler: scheduler,
		uploader:  uploader,
		analyzer:  analyzer,
		now:       time.Now,
	}
}

func (s *Service) Capture(ctx context.Context, text string) (Result, error) {
	logger := log.FromCtx(ctx)

	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyNote
	}

	mem, err := s.memories.Save(ctx, text)
	if err != nil {
		return Result{}, err
	}

	result := Result{Memory: mem}
	result.StorageWarning = s.memories.Usage(ctx).IsFull

	// Fire-and-forget: a failed upload never converts a successful
	// local save into a reported failure.
	if s.uploader != nil {
		s.uploader.Submit()
	}

	if s.analyzer == nil {
		return result, nil
	}

	intent, err := s.analyzer.AnalyzeReminder(ctx, text, s.now())
	if err != nil {
		logger.Warn().Err(err).Msg("reminder analysis failed")
		result.AnalysisFailed = true
		return result, nil
	}

	if !intent.IsReminder || intent.Timestamp == 0 || intent.Label == "" {
		return result, nil
	}

	rem := core.Reminder{
		ID:        uuid.NewString(),
		MemoryID:  mem.ID,
		Label:     intent.Label,
		Timestamp: intent.Timestamp,
	}
	if err := s.scheduler.Schedule(ctx, rem); err != nil {
		logger.Error().Err(err).Msg("failed to schedule reminder")
		result.AnalysisFailed = true
		return result, nil
	}

	result.Reminder = &rem
	return result, nil
}
