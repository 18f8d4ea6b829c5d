package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is the journal_lines table row.
type JournalLine struct {
	LineID     string          `db:"line_id"`
	VoucherID  string          `db:"voucher_id"`
	AccountID  string          `db:"account_id"`
	Debit      decimal.Decimal `db:"debit"`
	Credit     decimal.Decimal `db:"credit"`
	LineDate   time.Time       `db:"line_date"`
	Narration  string          `db:"narration"`
	IsReversed bool            `db:"is_reversed"`
	CreatedAt  time.Time       `db:"created_at"`
}
