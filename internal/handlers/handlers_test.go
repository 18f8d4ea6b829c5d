package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/handlers"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "bookkeeping-test"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	ledger    *MockLedgerService
	posting   *MockPostingService
	items     *MockItemService
	company   *MockCompanyService
	reporting *MockReportingService

	userID    string
	companyID string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.ledger = new(MockLedgerService)
	suite.posting = new(MockPostingService)
	suite.items = new(MockItemService)
	suite.company = new(MockCompanyService)
	suite.reporting = new(MockReportingService)

	suite.userID = uuid.NewString()
	suite.companyID = uuid.NewString()

	container := &portssvc.ServiceContainer{
		Ledger:    suite.ledger,
		Posting:   suite.posting,
		Items:     suite.items,
		Company:   suite.company,
		Reporting: suite.reporting,
	}

	// Use the actual AuthMiddleware
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testSecret, testIssuer))
	handlers.RegisterBooksRoutes(v1, container, nil, func(userID, companyID string) (string, error) {
		return utils.GenerateJWT(userID, companyID, testSecret, time.Hour, testIssuer)
	})
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.ledger.AssertExpectations(suite.T())
	suite.posting.AssertExpectations(suite.T())
	suite.items.AssertExpectations(suite.T())
	suite.company.AssertExpectations(suite.T())
	suite.reporting.AssertExpectations(suite.T())
}

// generateTestToken creates a JWT bound to the suite's user and company.
func (suite *HandlerTestSuite) generateTestToken() string {
	token, err := utils.GenerateJWT(suite.userID, suite.companyID, testSecret, time.Hour, testIssuer)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

// do serves an authenticated request; a string body is sent verbatim, anything else as JSON.
func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	suite.decode(w, &body)
	return body
}

func (suite *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
