package handlers_test

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) newAccount(name string, group domain.AccountGroup, nature domain.AccountNature) *domain.Account {
	return &domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Code:      domain.AccountCode(name),
		Name:      name,
		Group:     group,
		Nature:    nature,
		IsActive:  true,
	}
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	acc := suite.newAccount("Acme Traders", domain.GroupSundryDebtors, domain.Asset)
	acc.OpeningBalance = decimal.NewFromInt(500)
	acc.CurrentBalance = decimal.NewFromInt(500)

	suite.ledger.On("CreateAccount", mock.Anything, suite.companyID,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Name == "Acme Traders" && req.Group == "Sundry Debtors" && req.OpeningBalance.Equal(decimal.NewFromInt(500))
		}),
		suite.userID,
	).Return(acc, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts",
		`{"name":"Acme Traders","group":"Sundry Debtors","openingBalance":500}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal(acc.AccountID, resp.AccountID)
	suite.Equal("ACME_TRADERS", resp.Code)
	suite.Equal(domain.Asset, resp.Nature)
	suite.Equal(domain.Debit, resp.CurrentBalance.Side)
	suite.True(resp.CurrentBalance.Amount.Equal(decimal.NewFromInt(500)))
}

func (suite *HandlerTestSuite) TestCreateAccount_UnknownGroupRejectedBeforeService() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"name":"Mystery","group":"Miscellaneous"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_ServerOwnedFieldRejected() {
	w := suite.do(http.MethodPost, "/api/v1/accounts",
		`{"name":"Cash","group":"Cash-in-Hand","companyID":"someone-else"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.ledger.On("CreateAccount", mock.Anything, suite.companyID, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrDuplicateAccount).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"name":"Cash","group":"CASH_IN_HAND"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("DuplicateAccount", suite.errorBody(w)["kind"])
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.ledger.On("GetAccount", mock.Anything, suite.companyID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_FiltersByGroup() {
	creditor := suite.newAccount("Supplier One", domain.GroupSundryCreditors, domain.Liability)
	suite.ledger.On("ListAccounts", mock.Anything, suite.companyID,
		dto.ListAccountsParams{Group: "sundry-creditors"},
	).Return([]domain.Account{*creditor}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?group=sundry-creditors", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal(creditor.AccountID, resp.Accounts[0].AccountID)
}

func (suite *HandlerTestSuite) TestListGroups() {
	suite.ledger.On("ListGroups").Return(domain.NewClassifier().Groups()).Once()

	w := suite.do(http.MethodGet, "/api/v1/groups", nil)

	suite.Equal(http.StatusOK, w.Code)
	var groups []domain.GroupInfo
	suite.decode(w, &groups)
	suite.NotEmpty(groups)
}

func (suite *HandlerTestSuite) TestUpdateAccount_OpeningBalanceLocked() {
	suite.ledger.On("UpdateAccount", mock.Anything, suite.companyID, "acc-1",
		mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
			return req.OpeningBalance != nil && req.Name == nil
		}),
		suite.userID,
	).Return(nil, apperrors.ErrOpeningBalanceLockedAfterPostings).Once()

	w := suite.do(http.MethodPatch, "/api/v1/accounts/acc-1", `{"openingBalance":"250.00"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("OpeningBalanceLockedAfterPostings", suite.errorBody(w)["kind"])
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	suite.ledger.On("DeactivateAccount", mock.Anything, suite.companyID, "acc-1", suite.userID).Return(nil).Once()
	suite.ledger.On("DeactivateAccount", mock.Anything, suite.companyID, "acc-2", suite.userID).
		Return(apperrors.ErrAccountInUse).Once()

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/accounts/acc-1", nil).Code)

	w := suite.do(http.MethodDelete, "/api/v1/accounts/acc-2", nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("AccountInUse", suite.errorBody(w)["kind"])
}

func (suite *HandlerTestSuite) TestStatement_PassesPeriod() {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	acc := suite.newAccount("Cash", domain.GroupCashInHand, domain.Asset)

	suite.reporting.On("LedgerStatement", mock.Anything, suite.companyID, acc.AccountID,
		mock.MatchedBy(func(f *time.Time) bool { return f != nil && f.Equal(from) }),
		mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(to) }),
	).Return(&domain.LedgerStatement{Account: *acc, FromDate: &from, ToDate: &to}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/"+acc.AccountID+"/statement?fromDate=2024-04-01&toDate=2024-06-30", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.LedgerStatement
	suite.decode(w, &resp)
	suite.Equal(acc.AccountID, resp.Account.AccountID)
}

func (suite *HandlerTestSuite) TestStatement_InvalidPeriod() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/statement?fromDate=2024-07-01&toDate=2024-06-30", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounts/acc-1/statement?fromDate=01-07-2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestInternalErrorDoesNotLeak() {
	suite.ledger.On("GetAccount", mock.Anything, suite.companyID, "acc-1").
		Return(nil, apperrors.NewAppError(500, "failed to find account", errors.New("connection reset by peer"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
	suite.Equal("Failed to retrieve account", suite.errorBody(w)["error"])
}
