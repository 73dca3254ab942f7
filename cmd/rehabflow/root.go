package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rehabflow/backend/app"
	"github.com/rehabflow/backend/pkg/config"
	"github.com/rehabflow/backend/pkg/httpserver"
	"github.com/rehabflow/backend/pkg/lifecycle"
	"github.com/rehabflow/backend/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	serve := func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, cmd, envFiles)
	}

	rootCmd := &cobra.Command{
		Use:   "rehabflow",
		Short: "rehabflow API server",
		Long: `Connects to MongoDB and Redis, then serves the HTTP API until SIGINT or SIGTERM.

Configuration comes from the environment (APP_ENV, MONGODB_URL, REDIS_URL,
HTTP_ADDR, CORS_* ...), optionally seeded from .env files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Load variables from these .env files (default: ./.env if present)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the API server (default)",
		Args:  cobra.NoArgs,
		RunE:  serve,
	})
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// runServer resolves settings, builds the logger and runs the app. Any error
// it returns is fatal and makes the process exit non-zero.
func runServer(ctx context.Context, cmd *cobra.Command, envFiles []string) error {
	settings := config.NewProvider[app.Settings](envFiles...)
	if err := settings.Resolve(ctx); err != nil {
		return errors.Join(lifecycle.ErrConfiguration, err)
	}
	s, err := settings.Get()
	if err != nil {
		return errors.Join(lifecycle.ErrConfiguration, err)
	}
	log, err := app.NewLogger(s, cmd.OutOrStdout())
	if err != nil {
		return errors.Join(lifecycle.ErrConfiguration, err)
	}
	logger.SetAsDefault(log)

	a := app.New(settings,
		app.WithLogger(log),
		app.WithServerOptions(httpserver.WithoutSignals()),
	)
	if err := a.Run(ctx); err != nil {
		log.ErrorContext(ctx, "Service failed", logger.Error(err))
		return err
	}
	return nil
}
