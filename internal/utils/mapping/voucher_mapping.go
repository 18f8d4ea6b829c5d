package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelVoucher converts a domain Voucher header to a model Voucher.
// Items and lines are mapped separately.
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:       d.VoucherID,
		CompanyID:       d.CompanyID,
		VoucherNumber:   d.Number,
		VoucherType:     string(d.Type),
		VoucherDate:     d.Date,
		PartyAccountID:  d.PartyAccountID,
		TotalAmount:     d.TotalAmount,
		AmountPaid:      d.AmountPaid,
		Narration:       d.Narration,
		ReferenceNumber: d.ReferenceNumber,
		DueDate:         d.DueDate,
		Status:          string(d.Status),
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher without items or lines.
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:       m.VoucherID,
		CompanyID:       m.CompanyID,
		Number:          m.VoucherNumber,
		Type:            domain.VoucherType(m.VoucherType),
		Date:            m.VoucherDate,
		PartyAccountID:  m.PartyAccountID,
		TotalAmount:     m.TotalAmount,
		AmountPaid:      m.AmountPaid,
		Narration:       m.Narration,
		ReferenceNumber: m.ReferenceNumber,
		DueDate:         m.DueDate,
		Status:          domain.VoucherStatus(m.Status),
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVoucherItem converts a domain VoucherItem to a model VoucherItem
func ToModelVoucherItem(d domain.VoucherItem) models.VoucherItem {
	return models.VoucherItem{
		VoucherItemID: d.VoucherItemID,
		VoucherID:     d.VoucherID,
		ItemID:        d.ItemID,
		Quantity:      d.Quantity,
		Rate:          d.Rate,
		Discount:      d.Discount,
		Amount:        d.Amount,
	}
}

// ToDomainVoucherItem converts a model VoucherItem to a domain VoucherItem
func ToDomainVoucherItem(m models.VoucherItem) domain.VoucherItem {
	return domain.VoucherItem{
		VoucherItemID: m.VoucherItemID,
		VoucherID:     m.VoucherID,
		ItemID:        m.ItemID,
		Quantity:      m.Quantity,
		Rate:          m.Rate,
		Discount:      m.Discount,
		Amount:        m.Amount,
	}
}
