package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage usage and pending reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		defer a.db.Close()

		usage := a.memories.Usage(ctx)
		pending := a.reminders.PendingCount(ctx, time.Now().UnixMilli())

		fmt.Printf("Memories:          %d\n", len(a.memories.List(ctx)))
		fmt.Printf("Storage used:      %s (%.1f%% of quota)\n", usage.Formatted, usage.Percent)
		if usage.IsFull {
			fmt.Println("Warning: storage almost full!")
		}
		fmt.Printf("Pending reminders: %d\n", pending)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
