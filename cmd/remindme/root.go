package main

import (
	"context"
	"os"

	"github.com/sandevgo/remindme/internal/config"
	"github.com/sandevgo/remindme/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "remindme",
	Short: "remindme is a voice-memory capture assistant",
	Long:  `remindme captures personal notes, schedules reminders extracted from them, and backs the collection up to a remote drive.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
