package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher together with its items and journal lines.
	FindVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error)

	// ListVouchers returns a page of vouchers, newest first, and a token for the next page.
	ListVouchers(ctx context.Context, companyID string, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error)

	// SummarizeVouchers counts and totals non-cancelled vouchers per type.
	SummarizeVouchers(ctx context.Context, companyID string, from, to *time.Time) ([]domain.VoucherTypeCount, error)
}

// VoucherWriter defines the posting writes. All of them run inside the caller's transaction
// so that a voucher, its items, its stock movements and its journal lines commit together.
type VoucherWriter interface {
	// NextVoucherSequenceInTx locks the company row and returns count(type)+1.
	NextVoucherSequenceInTx(ctx context.Context, tx pgx.Tx, companyID string, voucherType domain.VoucherType) (int, error)

	// OpeningBalanceExistsInTx reports whether the company already has an opening balance voucher.
	OpeningBalanceExistsInTx(ctx context.Context, tx pgx.Tx, companyID string) (bool, error)

	// InsertVoucherInTx inserts the voucher header.
	InsertVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error

	// InsertVoucherItemsInTx batch-inserts line items.
	InsertVoucherItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.VoucherItem) error

	// InsertJournalLinesInTx batch-inserts journal lines.
	InsertJournalLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error

	// FindVoucherForUpdate locks and loads a voucher with its items and lines.
	FindVoucherForUpdate(ctx context.Context, tx pgx.Tx, companyID, voucherID string) (*domain.Voucher, error)

	// MarkVoucherCancelledInTx sets status CANCELLED, deactivates the voucher and flags its lines reversed.
	MarkVoucherCancelledInTx(ctx context.Context, tx pgx.Tx, companyID, voucherID, userID string, now time.Time) error

	// UpdateVoucherInTx writes date, narration, reference, due date, amount paid and status.
	// Journal line dates follow the voucher date.
	UpdateVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
