package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title Bookkeeping API
// @version 1.0
// @description Double-entry bookkeeping backend: ledgers, vouchers, stock and financial reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "books_backend",
		Short: "Double-entry bookkeeping service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newServeCommand(logger),
		newMigrateCommand(logger),
		newProvisionCommand(logger),
		newTokenCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
