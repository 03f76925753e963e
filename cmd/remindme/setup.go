package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/remindme/internal/config"
	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/internal/providers/llm"
	"github.com/sandevgo/remindme/internal/service/backup"
	"github.com/sandevgo/remindme/internal/service/capture"
	"github.com/sandevgo/remindme/internal/service/memory"
	"github.com/sandevgo/remindme/internal/service/reminder"
	"github.com/sandevgo/remindme/internal/storage/sqlite"
	"github.com/sandevgo/remindme/internal/transport/telegram"
	"github.com/sandevgo/remindme/pkg/log"
	"github.com/sandevgo/remindme/pkg/srv"
)

// app holds the wired core. Everything is explicit instance state tied
// to the command lifecycle; no package-level singletons.
type app struct {
	cfg       *config.AppConfig
	db        *sql.DB
	memories  *memory.Store
	reminders *sqlite.RemindersRepo
	trigger   *reminder.Trigger
	scheduler *reminder.Scheduler
	syncer    *backup.Synchronizer
	uploader  *backup.Uploader
	capture   *capture.Service
}

func newApp(ctx context.Context) *app {
	logger := log.FromCtx(ctx)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	kv := sqlite.NewKV(db, core.StorageQuotaBytes)
	memories := memory.NewStore(sqlite.NewMemoriesRepo(kv))
	reminders := sqlite.NewRemindersRepo(kv)

	// 3. Backup target. Without credentials the synchronizer stays
	// wired but reports ErrAuthRequired on every remote call.
	var remote core.BlobStore
	if appCfg.IsBackupSelected() {
		backupCfg := config.NewBackupConfig(ctx)
		if backupCfg.HasCredentials() {
			remote, err = backup.NewMinioStore(ctx, backupCfg)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to initialize backup store")
			}
		} else {
			logger.Warn().Msg("backup enabled without credentials, remote sync will require auth")
		}
	}
	syncer := backup.NewSynchronizer(memories, remote)

	var uploader *backup.Uploader
	if remote != nil {
		uploader = backup.NewUploader(syncer)
	}

	// 4. Reminder pipeline. The notifier is attached later, once a
	// transport exists; until then due reminders use the fallback alert.
	trigger := reminder.NewTrigger(reminders, nil)
	scheduler := reminder.NewScheduler(reminders, trigger)

	// 5. Intent analyzer
	var analyzer core.ReminderAnalyzer
	if appCfg.IsAnalyzerSelected() {
		analyzer = llm.NewAnalyzer(config.NewAnalyzerConfig(ctx))
	}

	captureSvc := capture.NewService(memories, scheduler, uploader, analyzer)

	return &app{
		cfg:       appCfg,
		db:        db,
		memories:  memories,
		reminders: reminders,
		trigger:   trigger,
		scheduler: scheduler,
		syncer:    syncer,
		uploader:  uploader,
		capture:   captureSvc,
	}
}

func NewServices(ctx context.Context, a *app) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	services = append(services, srv.NewCleanup(a.db.Close))

	if a.uploader != nil {
		services = append(services, a.uploader)
	}

	// Transports
	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.capture, a.memories, a.reminders)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		a.trigger.SetNotifier(bot)
		services = append(services, bot)
	}

	// Scheduler last: recovered timers must see the transport notifier
	// when one is configured.
	services = append(services, a.scheduler)

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
