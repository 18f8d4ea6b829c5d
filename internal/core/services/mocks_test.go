package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// The services only pass transactions through to repositories, so mocks hand out a nil pgx.Tx.
var noTx pgx.Tx

func txArg(args mock.Arguments, i int) pgx.Tx {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(pgx.Tx)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return txArg(args, 0), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, companyID, name string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) GetOrCreateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, bool, error) {
	args := m.Called(ctx, tx, account)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Bool(1), args.Error(2)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AccountUsageInTx(ctx context.Context, tx pgx.Tx, companyID, accountID string) (portsrepo.AccountUsage, error) {
	args := m.Called(ctx, tx, companyID, accountID)
	return args.Get(0).(portsrepo.AccountUsage), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	return m.Called(ctx, tx, account).Error(0)
}

func (m *MockAccountRepository) DeactivateAccountInTx(ctx context.Context, tx pgx.Tx, companyID, accountID, userID string, now time.Time) error {
	return m.Called(ctx, tx, companyID, accountID, userID, now).Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, companyID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, tx, companyID, balanceChanges, userID, now).Error(0)
}

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryWithTx = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return txArg(args, 0), args.Error(1)
}

func (m *MockVoucherRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockVoucherRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, companyID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, companyID string, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, companyID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Voucher), next, args.Error(2)
}

func (m *MockVoucherRepository) SummarizeVouchers(ctx context.Context, companyID string, from, to *time.Time) ([]domain.VoucherTypeCount, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherTypeCount), args.Error(1)
}

func (m *MockVoucherRepository) NextVoucherSequenceInTx(ctx context.Context, tx pgx.Tx, companyID string, voucherType domain.VoucherType) (int, error) {
	args := m.Called(ctx, tx, companyID, voucherType)
	return args.Int(0), args.Error(1)
}

func (m *MockVoucherRepository) OpeningBalanceExistsInTx(ctx context.Context, tx pgx.Tx, companyID string) (bool, error) {
	args := m.Called(ctx, tx, companyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherRepository) InsertVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	return m.Called(ctx, tx, voucher).Error(0)
}

func (m *MockVoucherRepository) InsertVoucherItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.VoucherItem) error {
	return m.Called(ctx, tx, items).Error(0)
}

func (m *MockVoucherRepository) InsertJournalLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	return m.Called(ctx, tx, lines).Error(0)
}

func (m *MockVoucherRepository) FindVoucherForUpdate(ctx context.Context, tx pgx.Tx, companyID, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, tx, companyID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) MarkVoucherCancelledInTx(ctx context.Context, tx pgx.Tx, companyID, voucherID, userID string, now time.Time) error {
	return m.Called(ctx, tx, companyID, voucherID, userID, now).Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	return m.Called(ctx, tx, voucher).Error(0)
}

// --- Mock ledger posting support ---
type MockLedgerSupport struct {
	mock.Mock
}

var _ portssvc.LedgerPostingSupport = (*MockLedgerSupport)(nil)

func (m *MockLedgerSupport) GetOrCreateAccountInTx(ctx context.Context, tx pgx.Tx, companyID, name string, group domain.AccountGroup, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, companyID, name, group, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock inventory ---
type MockInventory struct {
	mock.Mock
}

var _ portssvc.InventorySvc = (*MockInventory)(nil)

func (m *MockInventory) AdjustStockInTx(ctx context.Context, tx pgx.Tx, companyID, itemID string, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, companyID, itemID, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return txArg(args, 0), args.Error(1)
}

func (m *MockReportingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockReportingRepository) AccountActivityInTx(ctx context.Context, tx pgx.Tx, companyID string, filter portsrepo.ActivityFilter) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, tx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) StatementEntriesInTx(ctx context.Context, tx pgx.Tx, companyID, accountID string, from, to *time.Time) ([]domain.StatementEntry, error) {
	args := m.Called(ctx, tx, companyID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementEntry), args.Error(1)
}
