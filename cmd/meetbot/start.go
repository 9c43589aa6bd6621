package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/meetbot/pkg/log"
	"github.com/sandevgo/meetbot/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the meeting assistant services",
	Long:  `Connects to the configured utterance source and runs the trigger engine, output sinks, and optional transports until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// The console transport ends the session on 'exit' through this
		// cancel, same shutdown path as a signal.
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting meetbot")

		// Define services using the setup.go logic
		services := NewServices(ctx, cancel)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("meetbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
