package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetAccount(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, companyID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) ListGroups() []domain.GroupInfo {
	return m.Called().Get(0).([]domain.GroupInfo)
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error {
	return m.Called(ctx, companyID, accountID, userID).Error(0)
}

func (m *MockLedgerService) GetOrCreateAccount(ctx context.Context, companyID, name, group, userID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, name, group, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) ProvisionSystemAccounts(ctx context.Context, companyID, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetOrCreateAccountInTx(ctx context.Context, tx pgx.Tx, companyID, name string, group domain.AccountGroup, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, companyID, name, group, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) voucherResult(args mock.Arguments) (*domain.Voucher, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockPostingService) GetVoucher(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, companyID, voucherID))
}

func (m *MockPostingService) ListVouchers(ctx context.Context, companyID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}

func (m *MockPostingService) VoucherSummary(ctx context.Context, companyID string, params dto.ReportPeriodParams) ([]domain.VoucherTypeCount, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VoucherTypeCount), args.Error(1)
}

func (m *MockPostingService) PostVoucher(ctx context.Context, companyID string, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, companyID, req, userID))
}

func (m *MockPostingService) PostOpeningBalance(ctx context.Context, companyID string, req dto.OpeningBalanceRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, companyID, req, userID))
}

func (m *MockPostingService) CancelVoucher(ctx context.Context, companyID, voucherID, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, companyID, voucherID, userID))
}

func (m *MockPostingService) RecordPayment(ctx context.Context, companyID, voucherID string, req dto.RecordPaymentRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, companyID, voucherID, req, userID))
}

func (m *MockPostingService) UpdateVoucherDetails(ctx context.Context, companyID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, companyID, voucherID, req, userID))
}

// --- Mock ItemService ---
type MockItemService struct {
	mock.Mock
}

var _ portssvc.ItemSvcFacade = (*MockItemService)(nil)

func (m *MockItemService) itemResult(args mock.Arguments) (*domain.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemService) AdjustStockInTx(ctx context.Context, tx pgx.Tx, companyID, itemID string, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, companyID, itemID, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockItemService) CreateItem(ctx context.Context, companyID string, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	return m.itemResult(m.Called(ctx, companyID, req, userID))
}

func (m *MockItemService) GetItem(ctx context.Context, companyID, itemID string) (*domain.Item, error) {
	return m.itemResult(m.Called(ctx, companyID, itemID))
}

func (m *MockItemService) ListItems(ctx context.Context, companyID string, params dto.ListItemsParams) ([]domain.Item, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, companyID, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error) {
	return m.itemResult(m.Called(ctx, companyID, itemID, req, userID))
}

func (m *MockItemService) DeactivateItem(ctx context.Context, companyID, itemID, userID string) error {
	return m.Called(ctx, companyID, itemID, userID).Error(0)
}

func (m *MockItemService) AdjustStock(ctx context.Context, companyID, itemID string, req dto.AdjustStockRequest, userID string) (*domain.Item, error) {
	return m.itemResult(m.Called(ctx, companyID, itemID, req, userID))
}

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

var _ portssvc.CompanySvc = (*MockCompanyService)(nil)

func (m *MockCompanyService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest, userID string) (*domain.Company, []domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Company), args.Get(1).([]domain.Account), args.Error(2)
}

func (m *MockCompanyService) ProvisionCompany(ctx context.Context, companyID, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) TrialBalance(ctx context.Context, companyID string, from *time.Time, to time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.ProfitAndLoss, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitAndLoss), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockReportingService) LedgerStatement(ctx context.Context, companyID, accountID string, from, to *time.Time) (*domain.LedgerStatement, error) {
	args := m.Called(ctx, companyID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerStatement), args.Error(1)
}
