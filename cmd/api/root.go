package main

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sangkips/preferences-api/internal/config"
	"github.com/sangkips/preferences-api/internal/logger"
)

var configPath string // path to the .env file

var rootCmd = &cobra.Command{
	Use:   "preferences-api",
	Short: "User preferences service",
	Long: `preferences-api stores and serves per-user general settings,
notification toggles and theme settings behind an authenticating gateway.`,
	SilenceUsage: true,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the env file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and sets up logging and the gin mode
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to initialise logger")
	}

	if cfg.App.Env == "production" && !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	return cfg, nil
}
