package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sangkips/preferences-api/internal/config"
	"github.com/sangkips/preferences-api/pkg/utils"
)

var tokenTTL time.Duration

func init() { //nolint: gochecknoinits
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

// tokenCmd signs a gateway token for local testing of AUTH_MODE=jwt
var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Print a gateway token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.Auth.JWTSecret == "" {
			return errors.Wrap(config.ErrMissingJWTSecret, "can not sign token")
		}

		verifier, err := utils.NewGatewayTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.App.Name)
		if err != nil {
			return err
		}

		token, err := verifier.Issue(args[0], tokenTTL)
		if err != nil {
			return errors.Wrap(err, "failed to sign token")
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}
