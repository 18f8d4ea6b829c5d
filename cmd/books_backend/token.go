package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var (
		userID    string
		companyID string
		expiry    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token bound to a user and company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if expiry <= 0 {
				expiry = cfg.JWTExpiryDuration
			}

			token, err := utils.GenerateJWT(userID, companyID, cfg.JWTSecret, expiry, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "token subject (required)")
	cmd.Flags().StringVar(&companyID, "company", "", "company the token is bound to (required)")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime, defaults to JWT_EXPIRY_DURATION")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}
