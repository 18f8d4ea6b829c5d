package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherItemRequest is one inventory line on an item-bearing voucher.
// The line amount is computed server-side as quantity × rate − discount.
type VoucherItemRequest struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Discount decimal.Decimal `json:"discount"`
}

// JournalEntryRequest is one caller-specified posting line.
type JournalEntryRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Narration string          `json:"narration"`
}

// CreateVoucherRequest records a business event.
//
// Which fields matter depends on Type: item-bearing types use Items (or
// AccountingOnly with TotalAmount), PAYMENT/RECEIPT/notes need PartyAccountID,
// JOURNAL takes either DebitAccountID/CreditAccountID/TotalAmount or Entries.
type CreateVoucherRequest struct {
	Type            string                `json:"type" binding:"required,vouchertype"`
	Date            time.Time             `json:"date" binding:"required"`
	PartyAccountID  *string               `json:"partyAccountID"`
	CashAccountID   *string               `json:"cashAccountID"`
	DebitAccountID  *string               `json:"debitAccountID"`
	CreditAccountID *string               `json:"creditAccountID"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	AccountingOnly  bool                  `json:"accountingOnly"`
	Items           []VoucherItemRequest  `json:"items" binding:"omitempty,dive"`
	Entries         []JournalEntryRequest `json:"entries" binding:"omitempty,dive"`
	Narration       string                `json:"narration" binding:"max=1000"`
	ReferenceNumber string                `json:"referenceNumber" binding:"max=64"`
	DueDate         *time.Time            `json:"dueDate"`
}

// OpeningBalanceRequest posts the company's one-time opening balances.
type OpeningBalanceRequest struct {
	Date    time.Time             `json:"date" binding:"required"`
	Entries []JournalEntryRequest `json:"entries" binding:"required,dive"`
}

// UpdateVoucherRequest is the allow-list of voucher fields that stay editable
// after posting. Amounts, accounts and items are locked.
type UpdateVoucherRequest struct {
	Narration       *string    `json:"narration" binding:"omitempty,max=1000"`
	Date            *time.Time `json:"date"`
	ReferenceNumber *string    `json:"referenceNumber" binding:"omitempty,max=64"`
	DueDate         *time.Time `json:"dueDate"`
}

// RecordPaymentRequest settles part or all of a voucher.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	Type      string  `form:"type" binding:"omitempty,vouchertype"`
	Status    string  `form:"status" binding:"omitempty,oneof=PENDING PARTIALLY_PAID PAID CANCELLED"`
	FromDate  string  `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate    string  `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// VoucherItemResponse is one inventory line of a voucher.
type VoucherItemResponse struct {
	ItemID   string          `json:"itemID"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Discount decimal.Decimal `json:"discount"`
	Amount   decimal.Decimal `json:"amount"`
}

// JournalLineResponse is one posting of a voucher.
type JournalLineResponse struct {
	LineID     string          `json:"lineID"`
	AccountID  string          `json:"accountID"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Date       time.Time       `json:"date"`
	Narration  string          `json:"narration"`
	IsReversed bool            `json:"isReversed"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID       string                `json:"voucherID"`
	Number          string                `json:"number"`
	Type            domain.VoucherType    `json:"type"`
	Date            time.Time             `json:"date"`
	PartyAccountID  *string               `json:"partyAccountID,omitempty"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	AmountPaid      decimal.Decimal       `json:"amountPaid"`
	BalanceDue      decimal.Decimal       `json:"balanceDue"`
	Narration       string                `json:"narration"`
	ReferenceNumber string                `json:"referenceNumber,omitempty"`
	DueDate         *time.Time            `json:"dueDate,omitempty"`
	Status          domain.VoucherStatus  `json:"status"`
	Items           []VoucherItemResponse `json:"items,omitempty"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:       v.VoucherID,
		Number:          v.Number,
		Type:            v.Type,
		Date:            v.Date,
		PartyAccountID:  v.PartyAccountID,
		TotalAmount:     v.TotalAmount,
		AmountPaid:      v.AmountPaid,
		BalanceDue:      v.BalanceDue(),
		Narration:       v.Narration,
		ReferenceNumber: v.ReferenceNumber,
		DueDate:         v.DueDate,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		CreatedBy:       v.CreatedBy,
	}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, VoucherItemResponse{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Rate:     it.Rate,
			Discount: it.Discount,
			Amount:   it.Amount,
		})
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:     l.LineID,
			AccountID:  l.AccountID,
			Debit:      l.Debit,
			Credit:     l.Credit,
			Date:       l.Date,
			Narration:  l.Narration,
			IsReversed: l.IsReversed,
		})
	}
	return resp
}

// ListVouchersResponse wraps a page of vouchers.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// VoucherSummaryResponse is the per-type count and total of live vouchers.
type VoucherSummaryResponse struct {
	Types []domain.VoucherTypeCount `json:"types"`
}
