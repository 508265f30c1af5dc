package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sangkips/preferences-api/internal/infrastructure/database"
	"github.com/sangkips/preferences-api/internal/infrastructure/tracing"
	"github.com/sangkips/preferences-api/internal/server"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdownTracing, err := tracing.Init(ctx, cfg.App, cfg.Tracing)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
			defer cancel()
			if err := shutdownTracing(flushCtx); err != nil {
				log.Warn().Err(err).Msg("failed to flush traces")
			}
		}()

		db, err := database.Open(&cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Warn().Err(err).Msg("failed to close database")
			}
		}()

		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
		}

		srv, err := server.New(cfg, db, nil, nil)
		if err != nil {
			return errors.Wrap(err, "failed to build server")
		}
		defer srv.Close()

		return srv.Run(ctx)
	},
}
