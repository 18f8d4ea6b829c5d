package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a non-negative amount labelled with the side it sits on.
type Balance struct {
	Amount decimal.Decimal `json:"amount"`
	Side   Side            `json:"side"`
}

// DebitAmount returns Amount when the balance sits on the debit side, else zero.
func (b Balance) DebitAmount() decimal.Decimal {
	if b.Side == Debit {
		return b.Amount
	}
	return decimal.Zero
}

// CreditAmount returns Amount when the balance sits on the credit side, else zero.
func (b Balance) CreditAmount() decimal.Decimal {
	if b.Side == Credit {
		return b.Amount
	}
	return decimal.Zero
}

// AccountActivity is the raw aggregate the reporting store returns per account:
// movements before the period start and movements inside the period.
type AccountActivity struct {
	Account       Account
	PriorDebits   decimal.Decimal
	PriorCredits  decimal.Decimal
	PeriodDebits  decimal.Decimal
	PeriodCredits decimal.Decimal
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	Group        AccountGroup    `json:"group"`
	Nature       AccountNature   `json:"nature"`
	Opening      Balance         `json:"opening"`
	PeriodDebit  decimal.Decimal `json:"periodDebit"`
	PeriodCredit decimal.Decimal `json:"periodCredit"`
	Closing      Balance         `json:"closing"`
}

// TrialBalanceTotals are the column totals of a trial balance.
type TrialBalanceTotals struct {
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
}

// TrialBalanceChecks expose whether each pair of columns agrees.
type TrialBalanceChecks struct {
	OpeningBalanced bool `json:"openingBalanced"`
	PeriodBalanced  bool `json:"periodBalanced"`
	ClosingBalanced bool `json:"closingBalanced"`
}

// TrialBalance is the full trial balance report.
type TrialBalance struct {
	FromDate *time.Time         `json:"fromDate,omitempty"`
	ToDate   time.Time          `json:"toDate"`
	Rows     []TrialBalanceRow  `json:"rows"`
	Totals   TrialBalanceTotals `json:"totals"`
	Checks   TrialBalanceChecks `json:"checks"`
}

// AccountAmount represents an account with its signed amount in a financial report.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Group     AccountGroup    `json:"group"`
	Amount    decimal.Decimal `json:"amount"`
}

// ReportSection is a titled list of accounts with its total.
type ReportSection struct {
	Category ReportCategory  `json:"category"`
	Accounts []AccountAmount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// Add appends an account and accumulates the section total.
func (s *ReportSection) Add(a AccountAmount) {
	s.Accounts = append(s.Accounts, a)
	s.Total = s.Total.Add(a.Amount)
}

// ProfitOrLoss labels a net result.
type ProfitOrLoss string

const (
	Profit ProfitOrLoss = "PROFIT"
	Loss   ProfitOrLoss = "LOSS"
)

// ProfitAndLoss is the income statement for a period.
type ProfitAndLoss struct {
	FromDate         time.Time       `json:"fromDate"`
	ToDate           time.Time       `json:"toDate"`
	DirectIncome     ReportSection   `json:"directIncome"`
	IndirectIncome   ReportSection   `json:"indirectIncome"`
	DirectExpenses   ReportSection   `json:"directExpenses"`
	IndirectExpenses ReportSection   `json:"indirectExpenses"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	NetProfitOrLoss  decimal.Decimal `json:"netProfitOrLoss"`
	Result           ProfitOrLoss    `json:"result"`
}

// BalanceSheet is the statement of financial position as of a date.
type BalanceSheet struct {
	AsOf                time.Time       `json:"asOf"`
	FixedAssets         ReportSection   `json:"fixedAssets"`
	CurrentAssets       ReportSection   `json:"currentAssets"`
	Investments         ReportSection   `json:"investments"`
	LoansAssets         ReportSection   `json:"loansAssets"`
	Capital             ReportSection   `json:"capital"`
	CurrentLiabilities  ReportSection   `json:"currentLiabilities"`
	LongTermLiabilities ReportSection   `json:"longTermLiabilities"`
	Provisions          ReportSection   `json:"provisions"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"` // includes capital
	NetProfitOrLoss     decimal.Decimal `json:"netProfitOrLoss"`
	Result              ProfitOrLoss    `json:"result"`
	Difference          decimal.Decimal `json:"difference"`
	Balanced            bool            `json:"balanced"`
}

// StatementLine is one row of a ledger statement.
type StatementLine struct {
	Date          time.Time       `json:"date"`
	VoucherID     string          `json:"voucherID"`
	VoucherNumber string          `json:"voucherNumber"`
	VoucherType   VoucherType     `json:"voucherType"`
	Particulars   string          `json:"particulars"`
	Narration     string          `json:"narration"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       Balance         `json:"balance"`
}

// StatementEntry is the raw row the reporting store returns for a statement.
type StatementEntry struct {
	Line          JournalLine
	VoucherNumber string
	VoucherType   VoucherType
	Particulars   string // names of the other accounts on the voucher
}

// LedgerStatement is the chronological view of one account.
type LedgerStatement struct {
	Account  Account         `json:"account"`
	FromDate *time.Time      `json:"fromDate,omitempty"`
	ToDate   *time.Time      `json:"toDate,omitempty"`
	Opening  Balance         `json:"opening"`
	Lines    []StatementLine `json:"lines"`
	Closing  Balance         `json:"closing"`
}
