package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	ctx             context.Context
	companyID       string
	userID          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, services.WithLedgerClassifier(domain.NewClassifier()))
	suite.ctx = context.Background()
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) expectTx(commit bool) {
	suite.mockAccountRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil).Maybe()
	if commit {
		suite.mockAccountRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	}
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_ClassifiesGroup() {
	req := dto.CreateAccountRequest{Name: "  Acme   Traders ", Group: "Sundry Debtors", OpeningBalance: decimal.NewFromInt(250)}

	suite.mockAccountRepo.On("FindAccountByName", suite.ctx, suite.companyID, req.Name).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Acme   Traders" && a.Code == "ACME_TRADERS" &&
			a.Group == domain.GroupSundryDebtors && a.Nature == domain.Asset &&
			a.CurrentBalance.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()

	acc, err := suite.service.CreateAccount(suite.ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Asset, acc.Nature)
	suite.Equal(suite.companyID, acc.CompanyID)
	suite.True(acc.IsActive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_UnknownGroupFailsBeforeWrite() {
	req := dto.CreateAccountRequest{Name: "Mystery", Group: "MISC"}

	_, err := suite.service.CreateAccount(suite.ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccountGroup)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_Duplicate() {
	req := dto.CreateAccountRequest{Name: "cash in hand", Group: "CASH_IN_HAND"}
	existing := &domain.Account{AccountID: "a1", Name: domain.CashAccountName}

	suite.mockAccountRepo.On("FindAccountByName", suite.ctx, suite.companyID, req.Name).Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(suite.ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateAccount)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_DuplicateFromUniqueIndex() {
	req := dto.CreateAccountRequest{Name: "Bank", Group: "BANK_ACCOUNTS"}

	suite.mockAccountRepo.On("FindAccountByName", suite.ctx, suite.companyID, req.Name).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(suite.ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Equal("DuplicateAccount", apperrors.KindOf(err))
}

func (suite *LedgerServiceTestSuite) TestProvisionSystemAccounts_UsesUpsert() {
	suite.expectTx(true)
	for _, spec := range domain.SystemAccounts() {
		spec := spec
		stored := &domain.Account{AccountID: uuid.NewString(), Name: spec.Name, Group: spec.Group, IsSystem: true}
		suite.mockAccountRepo.On("GetOrCreateAccountInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
			return a.Name == spec.Name && a.IsSystem && a.OpeningBalance.IsZero()
		})).Return(stored, false, nil).Once()
	}

	accounts, err := suite.service.ProvisionSystemAccounts(suite.ctx, suite.companyID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(accounts, 3)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateAccount_OpeningBalanceLockedAfterPostings() {
	acc := domain.Account{AccountID: "a1", CompanyID: suite.companyID, Name: "Bank", Nature: domain.Asset, OpeningBalance: decimal.Zero}
	newOpening := decimal.NewFromInt(5000)

	suite.expectTx(false)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, suite.companyID, []string{"a1"}).
		Return(map[string]domain.Account{"a1": acc}, nil).Once()
	suite.mockAccountRepo.On("AccountUsageInTx", suite.ctx, mock.Anything, suite.companyID, "a1").
		Return(portsrepo.AccountUsage{JournalLines: 4}, nil).Once()

	_, err := suite.service.UpdateAccount(suite.ctx, suite.companyID, "a1", dto.UpdateAccountRequest{OpeningBalance: &newOpening}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOpeningBalanceLockedAfterPostings)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateAccount_RenameRederivesCode() {
	acc := domain.Account{AccountID: "a1", CompanyID: suite.companyID, Name: "Bank", Code: "BANK", Group: domain.GroupBankAccounts, Nature: domain.Asset}
	name := "HDFC Current"
	phone := "555-0101"

	suite.expectTx(true)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, suite.companyID, []string{"a1"}).
		Return(map[string]domain.Account{"a1": acc}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "HDFC_CURRENT" && a.Phone == phone && a.Group == domain.GroupBankAccounts
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(suite.ctx, suite.companyID, "a1", dto.UpdateAccountRequest{Name: &name, Phone: &phone}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("HDFC Current", updated.Name)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeactivateAccount_InUse() {
	acc := domain.Account{AccountID: "a1", CompanyID: suite.companyID, Name: "Acme", IsActive: true}

	suite.expectTx(false)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, suite.companyID, []string{"a1"}).
		Return(map[string]domain.Account{"a1": acc}, nil).Once()
	suite.mockAccountRepo.On("AccountUsageInTx", suite.ctx, mock.Anything, suite.companyID, "a1").
		Return(portsrepo.AccountUsage{ActivePartyVouchers: 1}, nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, suite.companyID, "a1", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountInUse)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestDeactivateAccount_Unused() {
	acc := domain.Account{AccountID: "a1", CompanyID: suite.companyID, Name: "Old Bank", IsActive: true}

	suite.expectTx(true)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, suite.companyID, []string{"a1"}).
		Return(map[string]domain.Account{"a1": acc}, nil).Once()
	suite.mockAccountRepo.On("AccountUsageInTx", suite.ctx, mock.Anything, suite.companyID, "a1").
		Return(portsrepo.AccountUsage{}, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccountInTx", suite.ctx, mock.Anything, suite.companyID, "a1", suite.userID, mock.Anything).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, suite.companyID, "a1", suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeactivateAccount_OpeningBalanceCountsAsUse() {
	acc := domain.Account{AccountID: "a1", CompanyID: suite.companyID, Name: "Old Bank", IsActive: true,
		OpeningBalance: decimal.NewFromInt(750)}

	suite.expectTx(false)
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", suite.ctx, mock.Anything, suite.companyID, []string{"a1"}).
		Return(map[string]domain.Account{"a1": acc}, nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, suite.companyID, "a1", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountInUse)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccountInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetOrCreateAccountInTx_RejectsUnusableExisting() {
	cases := []struct {
		name     string
		existing domain.Account
	}{
		{"inactive", domain.Account{AccountID: "s1", Name: domain.SalesAccountName, Group: domain.GroupSalesAccounts, Nature: domain.Income}},
		{"other nature", domain.Account{AccountID: "s2", Name: domain.SalesAccountName, Group: domain.GroupSundryDebtors, Nature: domain.Asset, IsActive: true}},
	}
	for _, tc := range cases {
		existing := tc.existing
		suite.mockAccountRepo.On("GetOrCreateAccountInTx", suite.ctx, mock.Anything,
			mock.MatchedBy(func(a domain.Account) bool { return a.Name == domain.SalesAccountName })).
			Return(&existing, false, nil).Once()

		_, err := suite.service.GetOrCreateAccountInTx(suite.ctx, nil, suite.companyID, domain.SalesAccountName, domain.GroupSalesAccounts, suite.userID)

		suite.Require().Error(err, tc.name)
		suite.ErrorIs(err, apperrors.ErrUnknownAccount, tc.name)
	}
}

func (suite *LedgerServiceTestSuite) TestGetOrCreateAccountInTx_ReusesMatchingAccount() {
	existing := domain.Account{AccountID: "s1", Name: domain.SalesAccountName, Group: domain.GroupSalesAccounts, Nature: domain.Income, IsActive: true}
	suite.mockAccountRepo.On("GetOrCreateAccountInTx", suite.ctx, mock.Anything, mock.AnythingOfType("domain.Account")).
		Return(&existing, false, nil).Once()

	acc, err := suite.service.GetOrCreateAccountInTx(suite.ctx, nil, suite.companyID, domain.SalesAccountName, domain.GroupSalesAccounts, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("s1", acc.AccountID)
}

func (suite *LedgerServiceTestSuite) TestListAccounts_GroupFilter() {
	group := domain.GroupSundryCreditors
	suite.mockAccountRepo.On("ListAccounts", suite.ctx, suite.companyID, portsrepo.AccountFilter{Group: &group}).
		Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(suite.ctx, suite.companyID, dto.ListAccountsParams{Group: "sundry-creditors"})

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
