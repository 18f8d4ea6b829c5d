package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType is the kind of business event a voucher records.
type VoucherType string

const (
	SalesInvoice    VoucherType = "SALES_INVOICE"
	PurchaseInvoice VoucherType = "PURCHASE_INVOICE"
	Payment         VoucherType = "PAYMENT"
	Receipt         VoucherType = "RECEIPT"
	JournalVoucher  VoucherType = "JOURNAL"
	DebitNote       VoucherType = "DEBIT_NOTE"
	CreditNote      VoucherType = "CREDIT_NOTE"
	OpeningBalance  VoucherType = "OPENING_BALANCE"
)

var voucherPrefixes = map[VoucherType]string{
	SalesInvoice:    "SI",
	PurchaseInvoice: "PI",
	Payment:         "PV",
	Receipt:         "RV",
	JournalVoucher:  "JV",
	DebitNote:       "DN",
	CreditNote:      "CN",
	OpeningBalance:  "OB",
}

// IsValid reports whether t is a recognised voucher type.
func (t VoucherType) IsValid() bool {
	_, ok := voucherPrefixes[t]
	return ok
}

// Prefix returns the numbering prefix for t.
func (t VoucherType) Prefix() string {
	return voucherPrefixes[t]
}

// IsItemBearing reports whether vouchers of this type carry inventory line items.
func (t VoucherType) IsItemBearing() bool {
	switch t {
	case SalesInvoice, PurchaseInvoice, DebitNote, CreditNote:
		return true
	}
	return false
}

// StockDirection is +1 when the voucher brings goods in, -1 when it sends them out,
// and 0 for types that never touch stock.
func (t VoucherType) StockDirection() int {
	switch t {
	case PurchaseInvoice, CreditNote:
		return 1
	case SalesInvoice, DebitNote:
		return -1
	}
	return 0
}

// RequiresParty reports whether the posting rule for t needs a counterparty ledger.
func (t VoucherType) RequiresParty() bool {
	switch t {
	case Payment, Receipt, DebitNote, CreditNote:
		return true
	}
	return false
}

// VoucherNumber formats the human-readable number for the given sequence.
func VoucherNumber(t VoucherType, sequence int) string {
	return fmt.Sprintf("%s-%04d", t.Prefix(), sequence)
}

// VoucherStatus is the settlement/lifecycle state of a voucher.
type VoucherStatus string

const (
	StatusPending       VoucherStatus = "PENDING"
	StatusPartiallyPaid VoucherStatus = "PARTIALLY_PAID"
	StatusPaid          VoucherStatus = "PAID"
	StatusCancelled     VoucherStatus = "CANCELLED"
)

// Voucher is a recorded business event together with its postings.
type Voucher struct {
	VoucherID       string          `json:"voucherID"`
	CompanyID       string          `json:"companyID"`
	Number          string          `json:"number"`
	Type            VoucherType     `json:"type"`
	Date            time.Time       `json:"date"`
	PartyAccountID  *string         `json:"partyAccountID,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	Narration       string          `json:"narration"`
	ReferenceNumber string          `json:"referenceNumber"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Status          VoucherStatus   `json:"status"`
	IsActive        bool            `json:"isActive"`
	Items           []VoucherItem   `json:"items,omitempty"`
	Lines           []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// BalanceDue is the unsettled part of the voucher total.
func (v Voucher) BalanceDue() decimal.Decimal {
	return v.TotalAmount.Sub(v.AmountPaid)
}

// VoucherItem is one inventory line of an item-bearing voucher.
type VoucherItem struct {
	VoucherItemID string          `json:"voucherItemID"`
	VoucherID     string          `json:"voucherID"`
	ItemID        string          `json:"itemID"`
	Quantity      decimal.Decimal `json:"quantity"`
	Rate          decimal.Decimal `json:"rate"`
	Discount      decimal.Decimal `json:"discount"`
	Amount        decimal.Decimal `json:"amount"`
}

// AmountScale is the number of decimal places money and quantity columns store.
const AmountScale int32 = 4

// FitsScale reports whether d can be stored without rounding.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// LineAmount is quantity × rate − discount, rounded half away from zero to AmountScale.
func LineAmount(quantity, rate, discount decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate).Sub(discount).Round(AmountScale)
}

// VoucherTypeCount is one row of the per-type voucher summary.
type VoucherTypeCount struct {
	Type        VoucherType     `json:"type"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// VoucherFilter narrows voucher listings.
type VoucherFilter struct {
	Type     *VoucherType
	Status   *VoucherStatus
	FromDate *time.Time
	ToDate   *time.Time
}
