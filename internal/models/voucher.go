package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the vouchers table row.
type Voucher struct {
	VoucherID       string          `db:"voucher_id"`
	CompanyID       string          `db:"company_id"`
	VoucherNumber   string          `db:"voucher_number"`
	VoucherType     string          `db:"voucher_type"`
	VoucherDate     time.Time       `db:"voucher_date"`
	PartyAccountID  *string         `db:"party_account_id"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	Narration       string          `db:"narration"`
	ReferenceNumber string          `db:"reference_number"`
	DueDate         *time.Time      `db:"due_date"`
	Status          string          `db:"status"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}

// VoucherItem is the voucher_items table row.
type VoucherItem struct {
	VoucherItemID string          `db:"voucher_item_id"`
	VoucherID     string          `db:"voucher_id"`
	ItemID        string          `db:"item_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	Rate          decimal.Decimal `db:"rate"`
	Discount      decimal.Decimal `db:"discount"`
	Amount        decimal.Decimal `db:"amount"`
}
