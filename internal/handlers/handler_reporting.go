package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ReportingHandler handles HTTP requests for financial reports
type ReportingHandler struct {
	reportingService portssvc.ReportingService
}

// NewReportingHandler creates a new reporting handler
func NewReportingHandler(reportingService portssvc.ReportingService) *ReportingHandler {
	return &ReportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes registers the report endpoints under /reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := NewReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.GetTrialBalance)
		reports.GET("/profit-and-loss", h.GetProfitAndLoss)
		reports.GET("/balance-sheet", h.GetBalanceSheet)
	}
}

// parseDate parses an optional YYYY-MM-DD query value.
func parseDate(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperrors.ErrValidation, name)
	}
	return &t, nil
}

// parsePeriod parses fromDate and toDate; either may be absent.
func parsePeriod(params dto.ReportPeriodParams) (from, to *time.Time, err error) {
	if from, err = parseDate("fromDate", params.FromDate); err != nil {
		return nil, nil, err
	}
	if to, err = parseDate("toDate", params.ToDate); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: fromDate is after toDate", apperrors.ErrValidation)
	}
	return from, to, nil
}

// today is the current UTC date at midnight.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// financialYearStart returns April 1 of the financial year containing d.
func financialYearStart(d time.Time) time.Time {
	year := d.Year()
	if d.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// GetTrialBalance godoc
// @Summary Get trial balance
// @Description Lists every active account with its closing debit or credit balance. Debit and credit totals always match.
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD); omitted covers all history"
// @Param toDate query string false "End date (YYYY-MM-DD); defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *ReportingHandler) GetTrialBalance(c *gin.Context) {
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
		respondError(c, err, "Invalid report period")
		return
	}
	if to == nil {
		t := today()
		to = &t
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, from, *to)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.TrialBalanceResponse{TrialBalance: tb})
}

// GetProfitAndLoss godoc
// @Summary Get profit and loss statement
// @Description Income and expenses for a period, split into direct and indirect sections
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD); defaults to the start of the financial year"
// @Param toDate query string false "End date (YYYY-MM-DD); defaults to today"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *ReportingHandler) GetProfitAndLoss(c *gin.Context) {
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
		respondError(c, err, "Invalid report period")
		return
	}
	if to == nil {
		t := today()
		to = &t
	}
	if from == nil {
		f := financialYearStart(*to)
		from = &f
	}

	pnl, err := h.reportingService.ProfitAndLoss(c.Request.Context(), companyID, *from, *to)
	if err != nil {
		respondError(c, err, "Failed to generate profit and loss statement")
		return
	}
	c.JSON(http.StatusOK, dto.ProfitAndLossResponse{ProfitAndLoss: pnl})
}

// GetBalanceSheet godoc
// @Summary Get balance sheet
// @Description Assets against liabilities and capital as of a date, with the period's profit or loss folded into capital
// @Tags reports
// @Produce json
// @Param asOf query string false "As-of date (YYYY-MM-DD); defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *ReportingHandler) GetBalanceSheet(c *gin.Context) {
	_, companyID, ok := session(c)
	if !ok {
		return
	}
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	asOf, err := parseDate("asOf", params.AsOf)
	if err != nil {
		respondError(c, err, "Invalid report date")
		return
	}
	if asOf == nil {
		t := today()
		asOf = &t
	}

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, *asOf)
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceSheetResponse{BalanceSheet: bs})
}
