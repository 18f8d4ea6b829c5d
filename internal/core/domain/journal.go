package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one debit-or-credit posting against one account.
// Exactly one of Debit and Credit is non-zero.
type JournalLine struct {
	LineID     string          `json:"lineID"`
	VoucherID  string          `json:"voucherID"`
	AccountID  string          `json:"accountID"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Date       time.Time       `json:"date"`
	Narration  string          `json:"narration"`
	IsReversed bool            `json:"isReversed"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Side returns the column the line posts to.
func (l JournalLine) Side() Side {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount returns the non-zero column.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// JournalTotals returns Σdebit and Σcredit across lines.
func JournalTotals(lines []JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}
