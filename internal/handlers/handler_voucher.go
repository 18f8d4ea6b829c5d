package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests related to vouchers and their postings.
type voucherHandler struct {
	postingService portssvc.PostingSvcFacade
	posthog        *utils.PosthogClientWrapper
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(ps portssvc.PostingSvcFacade, ph *utils.PosthogClientWrapper) *voucherHandler {
	return &voucherHandler{
		postingService: ps,
		posthog:        ph,
	}
}

// registerVoucherRoutes registers routes related to vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade, ph *utils.PosthogClientWrapper) {
	h := newVoucherHandler(postingService, ph)

	rg.POST("/opening-balance", h.postOpeningBalance)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.postVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/summary", h.voucherSummary)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PATCH("/:voucherID", h.updateVoucher)
		vouchers.POST("/:voucherID/cancel", h.cancelVoucher)
		vouchers.POST("/:voucherID/payments", h.recordPayment)
	}
}

// postVoucher godoc
// @Summary Post a voucher
// @Description Validates a business event, derives its balanced journal lines and posts them atomically with any stock movement.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input, unbalanced entry or unknown account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to post voucher"
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) postVoucher(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to post voucher",
		slog.String("voucher_type", req.Type),
		slog.Int("item_count", len(req.Items)),
		slog.Int("entry_count", len(req.Entries)))

	voucher, err := h.postingService.PostVoucher(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to post voucher")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "voucher_posted", map[string]interface{}{
		"voucher_type": string(voucher.Type),
		"line_count":   len(voucher.Lines),
		"item_count":   len(voucher.Items),
	})
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// postOpeningBalance godoc
// @Summary Post opening balances
// @Description Posts the company's single opening balance voucher. Entries must balance; post any difference to the Opening Balance Adjustment account explicitly.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param openingBalance body dto.OpeningBalanceRequest true "Opening balance entries"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Opening balance already exists"
// @Security BearerAuth
// @Router /opening-balance [post]
func (h *voucherHandler) postOpeningBalance(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.OpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voucher, err := h.postingService.PostOpeningBalance(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to post opening balance")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "opening_balance_posted", map[string]interface{}{
		"line_count": len(voucher.Lines),
	})
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// getVoucher godoc
// @Summary Get a voucher by ID
// @Description Returns the voucher with its items and journal lines
// @Tags vouchers
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	voucher, err := h.postingService.GetVoucher(c.Request.Context(), companyID, c.Param("voucherID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Lists vouchers newest first with token-based pagination
// @Tags vouchers
// @Produce json
// @Param type query string false "Voucher type"
// @Param status query string false "Voucher status"
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.postingService.ListVouchers(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// voucherSummary godoc
// @Summary Voucher summary
// @Description Counts and totals live vouchers per type for a period
// @Tags vouchers
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.VoucherSummaryResponse
// @Security BearerAuth
// @Router /vouchers/summary [get]
func (h *voucherHandler) voucherSummary(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	types, err := h.postingService.VoucherSummary(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "Failed to summarize vouchers")
		return
	}
	c.JSON(http.StatusOK, dto.VoucherSummaryResponse{Types: types})
}

// updateVoucher godoc
// @Summary Update voucher details
// @Description Edits narration, date, reference number or due date. Amounts and accounts are locked after posting.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Param voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [patch]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voucher, err := h.postingService.UpdateVoucherDetails(c.Request.Context(), companyID, c.Param("voucherID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// cancelVoucher godoc
// @Summary Cancel a voucher
// @Description Reverses the voucher's balance and stock effects and marks it CANCELLED
// @Tags vouchers
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Already cancelled or stock cannot be reversed"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/cancel [post]
func (h *voucherHandler) cancelVoucher(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}

	voucher, err := h.postingService.CancelVoucher(c.Request.Context(), companyID, c.Param("voucherID"), userID)
	if err != nil {
		respondError(c, err, "Failed to cancel voucher")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "voucher_cancelled", map[string]interface{}{
		"voucher_type": string(voucher.Type),
	})
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// recordPayment godoc
// @Summary Record a payment against a voucher
// @Description Accumulates a settlement and moves the voucher to PARTIALLY_PAID or PAID
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Param payment body dto.RecordPaymentRequest true "Payment amount"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid amount or overpayment"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/payments [post]
func (h *voucherHandler) recordPayment(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voucher, err := h.postingService.RecordPayment(c.Request.Context(), companyID, c.Param("voucherID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}
