package main

import (
	"errors"
	"fmt"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload the memory collection to the remote drive",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		defer a.db.Close()

		if err := a.syncer.UploadSnapshot(ctx); err != nil {
			if errors.Is(err, core.ErrAuthRequired) {
				return fmt.Errorf("remote auth required: set BACKUP_S3_ACCESS_KEY and BACKUP_S3_SECRET_KEY and enable REMINDME_ENABLE_BACKUP")
			}
			return err
		}

		fmt.Println("Backup uploaded.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
