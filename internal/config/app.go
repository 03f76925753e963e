package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/remindme/pkg/log"
)

type AppConfig struct {
	// Transport Flags
	EnableTelegram bool `env:"REMINDME_ENABLE_TELEGRAM" envDefault:"false"`

	// Backup Flags
	EnableBackup bool `env:"REMINDME_ENABLE_BACKUP" envDefault:"false"`

	// Analyzer Flags
	EnableAnalyzer bool `env:"REMINDME_ENABLE_ANALYZER" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(GetRuntimePath(), "remindme.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsBackupSelected() bool {
	return c.EnableBackup
}

func (c AppConfig) IsAnalyzerSelected() bool {
	return c.EnableAnalyzer
}
