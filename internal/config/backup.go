package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/remindme/pkg/log"
)

type BackupConfig struct {
	Endpoint  string `env:"BACKUP_S3_ENDPOINT,required,notEmpty"`
	AccessKey string `env:"BACKUP_S3_ACCESS_KEY"`
	SecretKey string `env:"BACKUP_S3_SECRET_KEY"`
	Bucket    string `env:"BACKUP_S3_BUCKET" envDefault:"remindme"`
	UseSSL    bool   `env:"BACKUP_S3_USE_SSL" envDefault:"true"`
}

func NewBackupConfig(ctx context.Context) *BackupConfig {
	c := &BackupConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Backup config")
	}
	return c
}

// HasCredentials reports whether a remote session can be established at
// all. The synchronizer refuses remote calls without them.
func (c BackupConfig) HasCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}
