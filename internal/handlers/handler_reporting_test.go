package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *HandlerTestSuite) TestTrialBalance_DefaultsToToday() {
	tb := &domain.TrialBalance{Checks: domain.TrialBalanceChecks{OpeningBalanced: true, PeriodBalanced: true, ClosingBalanced: true}}

	suite.reporting.On("TrialBalance", mock.Anything, suite.companyID,
		mock.MatchedBy(func(from *time.Time) bool { return from == nil }),
		mock.MatchedBy(func(to time.Time) bool {
			return !to.IsZero() && to.Hour() == 0 && to.Location() == time.UTC && !to.After(time.Now())
		}),
	).Return(tb, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.TrialBalance
	suite.decode(w, &resp)
	suite.True(resp.Checks.ClosingBalanced)
}

func (suite *HandlerTestSuite) TestTrialBalance_Period() {
	from := date(2024, time.April, 1)
	to := date(2025, time.March, 31)
	suite.reporting.On("TrialBalance", mock.Anything, suite.companyID,
		mock.MatchedBy(func(f *time.Time) bool { return f != nil && f.Equal(from) }),
		to,
	).Return(&domain.TrialBalance{FromDate: &from, ToDate: to}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?fromDate=2024-04-01&toDate=2025-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestProfitAndLoss_DefaultsToFinancialYearStart() {
	cases := []struct {
		toDate string
		from   time.Time
	}{
		{"2025-02-10", date(2024, time.April, 1)},
		{"2025-04-01", date(2025, time.April, 1)},
		{"2024-12-31", date(2024, time.April, 1)},
	}
	for _, tc := range cases {
		to, err := time.Parse(time.DateOnly, tc.toDate)
		suite.Require().NoError(err)

		suite.reporting.On("ProfitAndLoss", mock.Anything, suite.companyID, tc.from, to).
			Return(&domain.ProfitAndLoss{FromDate: tc.from, ToDate: to, Result: domain.Profit}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?toDate="+tc.toDate, nil)
		suite.Equal(http.StatusOK, w.Code, tc.toDate)
	}
}

func (suite *HandlerTestSuite) TestProfitAndLoss_FromAfterTo() {
	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?fromDate=2025-01-02&toDate=2025-01-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestBalanceSheet_AsOf() {
	asOf := date(2025, time.March, 31)
	bs := &domain.BalanceSheet{
		AsOf:        asOf,
		TotalAssets: decimal.NewFromInt(1500),
		Balanced:    true,
	}
	suite.reporting.On("BalanceSheet", mock.Anything, suite.companyID, asOf).Return(bs, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet?asOf=2025-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.BalanceSheet
	suite.decode(w, &resp)
	suite.True(resp.Balanced)
	suite.True(resp.TotalAssets.Equal(decimal.NewFromInt(1500)))
}

func (suite *HandlerTestSuite) TestBalanceSheet_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet?asOf=yesterday", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestItems_AdjustStockInsufficient() {
	suite.items.On("AdjustStock", mock.Anything, suite.companyID, "item-1",
		mock.MatchedBy(func(req dto.AdjustStockRequest) bool { return req.Delta.Equal(decimal.NewFromInt(-5)) }),
		suite.userID,
	).Return(nil, apperrors.ErrInsufficientStock).Once()

	w := suite.do(http.MethodPost, "/api/v1/items/item-1/adjust-stock", `{"delta":-5}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("InsufficientStock", suite.errorBody(w)["kind"])
}

func (suite *HandlerTestSuite) TestItems_CreateAndListLowStock() {
	item := &domain.Item{
		ItemID:        uuid.NewString(),
		CompanyID:     suite.companyID,
		Name:          "Widget",
		Rate:          decimal.NewFromInt(100),
		CurrentStock:  decimal.NewFromInt(2),
		MinStockLevel: decimal.NewFromInt(5),
		IsActive:      true,
	}
	suite.items.On("CreateItem", mock.Anything, suite.companyID,
		mock.MatchedBy(func(req dto.CreateItemRequest) bool { return req.Name == "Widget" }),
		suite.userID,
	).Return(item, nil).Once()
	suite.items.On("ListItems", mock.Anything, suite.companyID, dto.ListItemsParams{LowStockOnly: true}).
		Return([]domain.Item{*item}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/items", `{"name":"Widget","rate":100,"openingStock":2,"minStockLevel":5}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/items?lowStock=true", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ItemResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.True(resp[0].LowStock)
}

func (suite *HandlerTestSuite) TestRegisterCompany_ReturnsTokenForNewCompany() {
	newCompanyID := uuid.NewString()
	company := &domain.Company{CompanyID: newCompanyID, Name: "Acme Books", IsActive: true}
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), CompanyID: newCompanyID, Name: "Cash", Group: domain.GroupCashInHand, Nature: domain.Asset, IsSystem: true},
	}
	suite.company.On("RegisterCompany", mock.Anything,
		mock.MatchedBy(func(req dto.RegisterCompanyRequest) bool { return req.Name == "Acme Books" }),
		suite.userID,
	).Return(company, accounts, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/companies", `{"name":"Acme Books"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp struct {
		CompanyID string                `json:"companyID"`
		Accounts  []dto.AccountResponse `json:"accounts"`
		Token     string                `json:"token"`
	}
	suite.decode(w, &resp)
	suite.Equal(newCompanyID, resp.CompanyID)
	suite.Len(resp.Accounts, 1)

	claims, err := utils.ParseAndValidateJWT(resp.Token, testSecret, testIssuer)
	suite.Require().NoError(err)
	suite.Equal(newCompanyID, claims.CompanyID)
	suite.Equal(suite.userID, claims.Subject)
}

func (suite *HandlerTestSuite) TestProvisionCompany_UsesSessionCompany() {
	suite.company.On("ProvisionCompany", mock.Anything, suite.companyID, suite.userID).
		Return([]domain.Account{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/company/provision", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProvisionResponse
	suite.decode(w, &resp)
	suite.Equal(suite.companyID, resp.CompanyID)
}
