package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// VoucherReaderSvc defines read operations for vouchers
type VoucherReaderSvc interface {
	GetVoucher(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, companyID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
	VoucherSummary(ctx context.Context, companyID string, params dto.ReportPeriodParams) ([]domain.VoucherTypeCount, error)
}

// PostingSvc turns business events into balanced, atomically persisted postings.
type PostingSvc interface {
	// PostVoucher validates and posts a voucher of any type.
	PostVoucher(ctx context.Context, companyID string, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error)

	// PostOpeningBalance posts the company's single opening balance voucher.
	PostOpeningBalance(ctx context.Context, companyID string, req dto.OpeningBalanceRequest, userID string) (*domain.Voucher, error)

	// CancelVoucher reverses stock and balance effects and marks the voucher CANCELLED.
	CancelVoucher(ctx context.Context, companyID, voucherID, userID string) (*domain.Voucher, error)

	// RecordPayment accumulates a settlement and moves the status to PARTIALLY_PAID or PAID.
	RecordPayment(ctx context.Context, companyID, voucherID string, req dto.RecordPaymentRequest, userID string) (*domain.Voucher, error)

	// UpdateVoucherDetails edits the non-financial fields of a voucher.
	UpdateVoucherDetails(ctx context.Context, companyID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)
}

// PostingSvcFacade combines all voucher-related service interfaces
type PostingSvcFacade interface {
	VoucherReaderSvc
	PostingSvc
}
