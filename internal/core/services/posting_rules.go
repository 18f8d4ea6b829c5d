package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
)

// accountRef names the account a posting line hits: either an explicit id
// supplied by the caller, or a default ledger resolved by name on first use.
type accountRef struct {
	ID    string
	Name  string
	Group domain.AccountGroup
}

func (r accountRef) isDefault() bool { return r.ID == "" }

var (
	salesRef    = accountRef{Name: domain.SalesAccountName, Group: domain.GroupSalesAccounts}
	purchaseRef = accountRef{Name: domain.PurchaseAccountName, Group: domain.GroupPurchaseAccounts}
)

// plannedLine is a journal line whose account has not been resolved yet.
type plannedLine struct {
	Ref       accountRef
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Narration string
}

func nonEmpty(id *string) (string, bool) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return "", false
	}
	return strings.TrimSpace(*id), true
}

func cashRef(req dto.CreateVoucherRequest) accountRef {
	if id, ok := nonEmpty(req.CashAccountID); ok {
		return accountRef{ID: id}
	}
	return accountRef{Name: domain.CashAccountName, Group: domain.GroupCashInHand}
}

func pair(debit, credit accountRef, amount decimal.Decimal, narration string) ([]plannedLine, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: voucher total must be positive", apperrors.ErrValidation)
	}
	return []plannedLine{
		{Ref: debit, Debit: amount, Credit: decimal.Zero, Narration: narration},
		{Ref: credit, Debit: decimal.Zero, Credit: amount, Narration: narration},
	}, nil
}

func entryLines(entries []dto.JournalEntryRequest, narration string) []plannedLine {
	lines := make([]plannedLine, 0, len(entries))
	for _, e := range entries {
		n := e.Narration
		if n == "" {
			n = narration
		}
		lines = append(lines, plannedLine{
			Ref:       accountRef{ID: strings.TrimSpace(e.AccountID)},
			Debit:     e.Debit,
			Credit:    e.Credit,
			Narration: n,
		})
	}
	return lines
}

// planLines applies the posting rule table for a voucher type.
//
//	SALES_INVOICE     Dr party or Cash   Cr Sales
//	PURCHASE_INVOICE  Dr Purchase        Cr party or Cash
//	PAYMENT           Dr party           Cr Cash/Bank
//	RECEIPT           Dr Cash/Bank       Cr party
//	DEBIT_NOTE        Dr party           Cr Purchase
//	CREDIT_NOTE       Dr Sales           Cr party
//	JOURNAL           caller lines
func planLines(t domain.VoucherType, req dto.CreateVoucherRequest, total decimal.Decimal) ([]plannedLine, error) {
	partyID, hasParty := nonEmpty(req.PartyAccountID)
	if t.RequiresParty() && !hasParty {
		return nil, fmt.Errorf("%w: %s requires a party account", apperrors.ErrValidation, t)
	}
	party := accountRef{ID: partyID}
	counter := party
	if !hasParty {
		counter = cashRef(req)
	}

	switch t {
	case domain.SalesInvoice:
		return pair(counter, salesRef, total, req.Narration)
	case domain.PurchaseInvoice:
		return pair(purchaseRef, counter, total, req.Narration)
	case domain.Payment:
		return pair(party, cashRef(req), total, req.Narration)
	case domain.Receipt:
		return pair(cashRef(req), party, total, req.Narration)
	case domain.DebitNote:
		return pair(party, purchaseRef, total, req.Narration)
	case domain.CreditNote:
		return pair(salesRef, party, total, req.Narration)
	case domain.JournalVoucher:
		if len(req.Entries) > 0 {
			return entryLines(req.Entries, req.Narration), nil
		}
		debitID, okDebit := nonEmpty(req.DebitAccountID)
		creditID, okCredit := nonEmpty(req.CreditAccountID)
		if !okDebit || !okCredit {
			return nil, fmt.Errorf("%w: journal needs entries or debit and credit accounts", apperrors.ErrValidation)
		}
		if debitID == creditID {
			return nil, fmt.Errorf("%w: debit and credit accounts must differ", apperrors.ErrValidation)
		}
		return pair(accountRef{ID: debitID}, accountRef{ID: creditID}, total, req.Narration)
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidVoucherType, t)
}

// buildItems computes line amounts and the voucher total for an item-bearing voucher.
func buildItems(voucherID string, reqItems []dto.VoucherItemRequest) ([]domain.VoucherItem, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]domain.VoucherItem, 0, len(reqItems))
	for i, it := range reqItems {
		if strings.TrimSpace(it.ItemID) == "" {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d has no item id", apperrors.ErrValidation, i+1)
		}
		if !it.Quantity.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if !domain.FitsScale(it.Quantity) || !domain.FitsScale(it.Rate) || !domain.FitsScale(it.Discount) {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d has more than %d decimal places", apperrors.ErrValidation, i+1, domain.AmountScale)
		}
		if it.Rate.IsNegative() || it.Discount.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d has a negative rate or discount", apperrors.ErrValidation, i+1)
		}
		amount := domain.LineAmount(it.Quantity, it.Rate, it.Discount)
		if amount.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d discount exceeds its value", apperrors.ErrValidation, i+1)
		}
		items = append(items, domain.VoucherItem{
			VoucherID: voucherID,
			ItemID:    strings.TrimSpace(it.ItemID),
			Quantity:  it.Quantity,
			Rate:      it.Rate,
			Discount:  it.Discount,
			Amount:    amount,
		})
		total = total.Add(amount)
	}
	return items, total, nil
}

// initialSettlement decides the status a freshly posted voucher starts in.
// Cash-side events settle at once; anything owed by or to a party starts PENDING.
func initialSettlement(t domain.VoucherType, hasParty bool, total decimal.Decimal) (domain.VoucherStatus, decimal.Decimal) {
	switch t {
	case domain.Payment, domain.Receipt, domain.JournalVoucher, domain.OpeningBalance:
		return domain.StatusPaid, total
	case domain.SalesInvoice, domain.PurchaseInvoice:
		if !hasParty {
			return domain.StatusPaid, total
		}
	}
	return domain.StatusPending, decimal.Zero
}

// dateOnly strips the clock from t; vouchers are dated, not timestamped.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDateParam parses an optional YYYY-MM-DD query value.
func parseDateParam(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperrors.ErrValidation, name)
	}
	return &t, nil
}
