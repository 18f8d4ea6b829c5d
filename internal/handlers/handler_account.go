package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to ledger accounts.
type accountHandler struct {
	ledgerService    portssvc.LedgerSvcFacade
	reportingService portssvc.ReportingService
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ls portssvc.LedgerSvcFacade, rs portssvc.ReportingService) *accountHandler {
	return &accountHandler{
		ledgerService:    ls,
		reportingService: rs,
	}
}

// registerAccountRoutes registers routes related to accounts and account groups.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, reportingService portssvc.ReportingService) {
	h := newAccountHandler(ledgerService, reportingService)

	rg.GET("/groups", h.listGroups)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PATCH("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/:accountID/statement", h.getStatement)
	}
}

// listGroups godoc
// @Summary List account groups
// @Description Lists every ledger group with its nature and report category
// @Tags accounts
// @Produce json
// @Success 200 {array} domain.GroupInfo
// @Security BearerAuth
// @Router /groups [get]
func (h *accountHandler) listGroups(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledgerService.ListGroups())
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a ledger account in the session's company. Nature is derived from the group.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown group"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("group", req.Group))

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	account, err := h.ledgerService.GetAccount(c.Request.Context(), companyID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the company's accounts ordered by group and name
// @Tags accounts
// @Produce  json
// @Param   group query string false "Filter by group"
// @Param   includeInactive query bool false "Include deactivated accounts"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	accounts, err := h.ledgerService.ListAccounts(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates the allow-listed fields of an account. Opening balance is locked once postings exist.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Opening balance locked or name taken"
// @Security BearerAuth
// @Router /accounts/{accountID} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.ledgerService.UpdateAccount(c.Request.Context(), companyID, c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Soft-deletes an account that no posting or live voucher references
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account in use"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	if err := h.ledgerService.DeactivateAccount(c.Request.Context(), companyID, c.Param("accountID"), userID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getStatement godoc
// @Summary Ledger statement
// @Description Lists an account's postings with particulars and a running balance
// @Tags accounts
// @Produce json
// @Param   accountID path string true "Account ID"
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerStatementResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/statement [get]
func (h *accountHandler) getStatement(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	from, to, err := parsePeriod(params)
	if err != nil {
		respondError(c, err, "Invalid statement period")
		return
	}

	statement, err := h.reportingService.LedgerStatement(c.Request.Context(), companyID, c.Param("accountID"), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate ledger statement")
		return
	}
	c.JSON(http.StatusOK, dto.LedgerStatementResponse{LedgerStatement: statement})
}
