package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) newVoucher(t domain.VoucherType, total int64) *domain.Voucher {
	return &domain.Voucher{
		VoucherID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Number:      domain.VoucherNumber(t, 1),
		Type:        t,
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromInt(total),
		Status:      domain.StatusPending,
		IsActive:    true,
	}
}

func (suite *HandlerTestSuite) TestPostVoucher_SalesInvoice() {
	v := suite.newVoucher(domain.SalesInvoice, 1000)
	party := "party-1"
	v.PartyAccountID = &party
	v.Items = []domain.VoucherItem{{ItemID: "item-1", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100), Amount: decimal.NewFromInt(1000)}}

	suite.posting.On("PostVoucher", mock.Anything, suite.companyID,
		mock.MatchedBy(func(req dto.CreateVoucherRequest) bool {
			return req.Type == "SALES_INVOICE" && len(req.Items) == 1 && req.Items[0].Quantity.Equal(decimal.NewFromInt(10))
		}),
		suite.userID,
	).Return(v, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers", `{
		"type": "SALES_INVOICE",
		"date": "2024-05-10T00:00:00Z",
		"partyAccountID": "party-1",
		"items": [{"itemID": "item-1", "quantity": 10, "rate": 100}]
	}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.VoucherResponse
	suite.decode(w, &resp)
	suite.Equal("SI-0001", resp.Number)
	suite.True(resp.BalanceDue.Equal(decimal.NewFromInt(1000)))
	suite.Require().Len(resp.Items, 1)
}

func (suite *HandlerTestSuite) TestPostVoucher_UnknownTypeRejected() {
	w := suite.do(http.MethodPost, "/api/v1/vouchers", `{"type":"BARTER","date":"2024-05-10T00:00:00Z"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.posting.AssertNotCalled(suite.T(), "PostVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostVoucher_DomainErrors() {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{apperrors.ErrUnbalancedEntry, http.StatusBadRequest, "UnbalancedEntry"},
		{apperrors.ErrUnknownAccount, http.StatusBadRequest, "UnknownAccount"},
		{apperrors.ErrInsufficientStock, http.StatusConflict, "InsufficientStock"},
		{apperrors.ErrItemNotFound, http.StatusNotFound, "ItemNotFound"},
		{apperrors.ErrOpeningBalanceAlreadyExists, http.StatusConflict, "OpeningBalanceAlreadyExists"},
	}
	for _, tc := range cases {
		suite.posting.On("PostVoucher", mock.Anything, suite.companyID, mock.Anything, suite.userID).
			Return(nil, tc.err).Once()

		w := suite.do(http.MethodPost, "/api/v1/vouchers",
			`{"type":"JOURNAL","date":"2024-05-10T00:00:00Z","debitAccountID":"a","creditAccountID":"b","totalAmount":10}`)

		suite.Equal(tc.status, w.Code, tc.kind)
		suite.Equal(tc.kind, suite.errorBody(w)["kind"])
	}
}

func (suite *HandlerTestSuite) TestPostOpeningBalance() {
	v := suite.newVoucher(domain.OpeningBalance, 0)
	v.Status = domain.StatusPaid

	suite.posting.On("PostOpeningBalance", mock.Anything, suite.companyID,
		mock.MatchedBy(func(req dto.OpeningBalanceRequest) bool {
			return len(req.Entries) == 2 && req.Entries[0].Debit.Equal(decimal.NewFromInt(5000))
		}),
		suite.userID,
	).Return(v, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/opening-balance", `{
		"date": "2024-04-01T00:00:00Z",
		"entries": [
			{"accountID": "cash", "debit": 5000},
			{"accountID": "capital", "credit": 5000}
		]
	}`)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestPostOpeningBalance_UnbalancedRejected() {
	suite.posting.On("PostOpeningBalance", mock.Anything, suite.companyID, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrUnbalancedEntry).Once()

	w := suite.do(http.MethodPost, "/api/v1/opening-balance", `{
		"date": "2024-04-01T00:00:00Z",
		"entries": [
			{"accountID": "cash", "debit": 5000},
			{"accountID": "capital", "credit": 4000}
		]
	}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("UnbalancedEntry", suite.errorBody(w)["kind"])
}

func (suite *HandlerTestSuite) TestListVouchers_DefaultLimit() {
	suite.posting.On("ListVouchers", mock.Anything, suite.companyID,
		mock.MatchedBy(func(p dto.ListVouchersParams) bool {
			return p.Limit == 20 && p.Type == "PAYMENT" && p.NextToken == nil
		}),
	).Return(&dto.ListVouchersResponse{Vouchers: []dto.VoucherResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vouchers?type=PAYMENT", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListVouchers_InvalidStatus() {
	w := suite.do(http.MethodGet, "/api/v1/vouchers?status=OVERDUE", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestVoucherSummary() {
	suite.posting.On("VoucherSummary", mock.Anything, suite.companyID,
		dto.ReportPeriodParams{FromDate: "2024-04-01"},
	).Return([]domain.VoucherTypeCount{{Type: domain.SalesInvoice, Count: 3, TotalAmount: decimal.NewFromInt(900)}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vouchers/summary?fromDate=2024-04-01", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoucherSummaryResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Types, 1)
	suite.Equal(3, resp.Types[0].Count)
}

func (suite *HandlerTestSuite) TestCancelVoucher() {
	v := suite.newVoucher(domain.PurchaseInvoice, 400)
	v.Status = domain.StatusCancelled
	v.IsActive = false

	suite.posting.On("CancelVoucher", mock.Anything, suite.companyID, v.VoucherID, suite.userID).Return(v, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers/"+v.VoucherID+"/cancel", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoucherResponse
	suite.decode(w, &resp)
	suite.Equal(domain.StatusCancelled, resp.Status)
}

func (suite *HandlerTestSuite) TestRecordPayment() {
	v := suite.newVoucher(domain.SalesInvoice, 1000)
	v.AmountPaid = decimal.NewFromInt(400)
	v.Status = domain.StatusPartiallyPaid

	suite.posting.On("RecordPayment", mock.Anything, suite.companyID, v.VoucherID,
		mock.MatchedBy(func(req dto.RecordPaymentRequest) bool { return req.Amount.Equal(decimal.NewFromInt(400)) }),
		suite.userID,
	).Return(v, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vouchers/"+v.VoucherID+"/payments", `{"amount":400}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoucherResponse
	suite.decode(w, &resp)
	suite.Equal(domain.StatusPartiallyPaid, resp.Status)
	suite.True(resp.BalanceDue.Equal(decimal.NewFromInt(600)))
}

func (suite *HandlerTestSuite) TestUpdateVoucher_AmountsAreNotEditable() {
	w := suite.do(http.MethodPatch, "/api/v1/vouchers/v-1", `{"totalAmount":5}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.posting.AssertNotCalled(suite.T(), "UpdateVoucherDetails", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestUpdateVoucher_Narration() {
	v := suite.newVoucher(domain.JournalVoucher, 10)
	v.Narration = "rent for May"

	suite.posting.On("UpdateVoucherDetails", mock.Anything, suite.companyID, v.VoucherID,
		mock.MatchedBy(func(req dto.UpdateVoucherRequest) bool {
			return req.Narration != nil && *req.Narration == "rent for May" && req.Date == nil
		}),
		suite.userID,
	).Return(v, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/vouchers/"+v.VoucherID, `{"narration":"rent for May"}`)

	suite.Equal(http.StatusOK, w.Code)
}
