package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ReportPeriodParams are the date query parameters shared by the report endpoints.
// Dates use the YYYY-MM-DD layout.
type ReportPeriodParams struct {
	FromDate string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	AsOf     string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	*domain.TrialBalance
}

// ProfitAndLossResponse represents the profit and loss report response.
type ProfitAndLossResponse struct {
	*domain.ProfitAndLoss
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	*domain.BalanceSheet
}

// LedgerStatementResponse represents a single account's statement.
type LedgerStatementResponse struct {
	*domain.LedgerStatement
}
