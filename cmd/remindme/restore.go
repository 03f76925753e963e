package main

import (
	"errors"
	"fmt"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/spf13/cobra"
)

var restoreYes bool

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace local memories with the remote backup",
	Long:  `Downloads the remote backup object and fully replaces the local memory collection with its contents. Destructive; requires --yes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if !restoreYes {
			return fmt.Errorf("restore overwrites all local memories; re-run with --yes to confirm")
		}

		a := newApp(ctx)
		defer a.db.Close()

		count, err := a.syncer.RestoreSnapshot(ctx)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrBackupNotFound):
				return fmt.Errorf("no backup found in the remote drive")
			case errors.Is(err, core.ErrAuthRequired):
				return fmt.Errorf("remote auth required: set BACKUP_S3_ACCESS_KEY and BACKUP_S3_SECRET_KEY and enable REMINDME_ENABLE_BACKUP")
			}
			return err
		}

		fmt.Printf("Restored %d memories from backup.\n", count)
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "confirm the destructive restore")
	rootCmd.AddCommand(restoreCmd)
}
