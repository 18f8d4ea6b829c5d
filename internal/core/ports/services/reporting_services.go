package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance for [from, to]; a nil from covers all history.
	TrialBalance(ctx context.Context, companyID string, from *time.Time, to time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.ProfitAndLoss, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheet, error)

	// LedgerStatement lists one account's postings with a running balance.
	LedgerStatement(ctx context.Context, companyID, accountID string, from, to *time.Time) (*domain.LedgerStatement, error)
}
