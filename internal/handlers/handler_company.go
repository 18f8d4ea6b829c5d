package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// TokenIssuer mints a bearer token bound to a user and a company.
type TokenIssuer func(userID, companyID string) (string, error)

// RegisterCompanyResponse is returned when a new company is registered.
// Token is bound to the new company so the caller can switch to it directly.
type RegisterCompanyResponse struct {
	dto.ProvisionResponse
	Name  string `json:"name"`
	Token string `json:"token"`
}

// companyHandler handles company registration and provisioning.
type companyHandler struct {
	companyService portssvc.CompanySvc
	issueToken     TokenIssuer
}

func newCompanyHandler(cs portssvc.CompanySvc, issuer TokenIssuer) *companyHandler {
	return &companyHandler{companyService: cs, issueToken: issuer}
}

// registerCompanyRoutes registers company routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvc, issuer TokenIssuer) {
	h := newCompanyHandler(companyService, issuer)

	rg.POST("/companies", h.registerCompany)
	rg.POST("/company/provision", h.provisionCompany)
}

// registerCompany godoc
// @Summary Register a company
// @Description Creates a company, provisions its system accounts and returns a token bound to it
// @Tags company
// @Accept json
// @Produce json
// @Param company body dto.RegisterCompanyRequest true "Company details"
// @Success 201 {object} RegisterCompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Company already exists"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) registerCompany(c *gin.Context) {
	userID, _, ok := session(c)
	if !ok {
		return
	}
	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	company, accounts, err := h.companyService.RegisterCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to register company")
		return
	}

	token, err := h.issueToken(userID, company.CompanyID)
	if err != nil {
		respondError(c, err, "Failed to issue token for company")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Company registered",
		slog.String("new_company_id", company.CompanyID),
		slog.Int("system_accounts", len(accounts)))

	c.JSON(http.StatusCreated, RegisterCompanyResponse{
		ProvisionResponse: dto.ProvisionResponse{
			CompanyID: company.CompanyID,
			Accounts:  dto.ToListAccountResponse(accounts),
		},
		Name:  company.Name,
		Token: token,
	})
}

// provisionCompany godoc
// @Summary Provision system accounts
// @Description Creates any missing system accounts for the session's company. Safe to repeat.
// @Tags company
// @Produce json
// @Success 200 {object} dto.ProvisionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /company/provision [post]
func (h *companyHandler) provisionCompany(c *gin.Context) {
	userID, companyID, ok := session(c)
	if !ok {
		return
	}

	accounts, err := h.companyService.ProvisionCompany(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err, "Failed to provision company")
		return
	}
	c.JSON(http.StatusOK, dto.ProvisionResponse{
		CompanyID: companyID,
		Accounts:  dto.ToListAccountResponse(accounts),
	})
}
