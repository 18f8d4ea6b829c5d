package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/spf13/cobra"
)

func newProvisionCommand(logger *slog.Logger) *cobra.Command {
	var (
		name      string
		userID    string
		companyID string
		fyStart   string
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Register a company (or re-provision an existing one) and print a token for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (name == "") == (companyID == "") {
				return fmt.Errorf("exactly one of --name or --company is required")
			}

			a, err := bootstrap(cmd.Context(), logger, true)
			if err != nil {
				return err
			}
			defer a.Close()

			var accountCount int
			if companyID != "" {
				accounts, err := a.services.Company.ProvisionCompany(cmd.Context(), companyID, userID)
				if err != nil {
					return fmt.Errorf("provisioning company %s: %w", companyID, err)
				}
				accountCount = len(accounts)
			} else {
				req := dto.RegisterCompanyRequest{Name: name}
				if fyStart != "" {
					if req.FinancialYearStart, err = time.Parse(time.DateOnly, fyStart); err != nil {
						return fmt.Errorf("--fy-start must be YYYY-MM-DD: %w", err)
					}
				}
				company, accounts, err := a.services.Company.RegisterCompany(cmd.Context(), req, userID)
				if err != nil {
					return fmt.Errorf("registering company %q: %w", name, err)
				}
				companyID = company.CompanyID
				accountCount = len(accounts)
			}

			token, err := utils.GenerateJWT(userID, companyID, a.cfg.JWTSecret, a.cfg.JWTExpiryDuration, a.cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "company:         %s\n", companyID)
			fmt.Fprintf(out, "system accounts: %d\n", accountCount)
			fmt.Fprintf(out, "token:           %s\n", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of a new company to register")
	cmd.Flags().StringVar(&companyID, "company", "", "existing company to re-provision")
	cmd.Flags().StringVar(&userID, "user", "system", "user recorded as creator and token subject")
	cmd.Flags().StringVar(&fyStart, "fy-start", "", "financial year start (YYYY-MM-DD), defaults to April 1")

	return cmd
}
