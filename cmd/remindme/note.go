package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/remindme/internal/core"
	"github.com/sandevgo/remindme/pkg/log"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note <text...>",
	Short: "Capture a memory",
	Long:  `Saves a note through the full capture pipeline: local persistence, background backup, and reminder-intent analysis.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		a := newApp(ctx)
		defer a.db.Close()

		result, err := a.capture.Capture(ctx, strings.Join(args, " "))
		if err != nil {
			if errors.Is(err, core.ErrStorageFull) {
				return fmt.Errorf("storage full: delete memories or back up and clear")
			}
			return err
		}

		// One-shot process: no background uploader is running, so push
		// the snapshot directly. Failure is logged, never fatal.
		if a.uploader != nil {
			if err := a.syncer.UploadSnapshot(ctx); err != nil {
				logger.Warn().Err(err).Msg("background sync failed")
			}
		}

		switch {
		case result.Reminder != nil:
			at := time.UnixMilli(result.Reminder.Timestamp)
			fmt.Printf("Reminder set for %s!\n", at.Format("Jan 02 15:04"))
		case result.StorageWarning:
			fmt.Println("Memory saved. Warning: storage almost full!")
		case result.AnalysisFailed:
			fmt.Println("Memory saved (Analysis failed)")
		default:
			fmt.Println("Memory saved!")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
