package dto

import "time"

// RegisterCompanyRequest defines the data needed to register a company.
type RegisterCompanyRequest struct {
	Name               string    `json:"name" binding:"required,max=255"`
	FinancialYearStart time.Time `json:"financialYearStart"`
}

// ProvisionResponse lists the system accounts a company owns after provisioning.
type ProvisionResponse struct {
	CompanyID string            `json:"companyID"`
	Accounts  []AccountResponse `json:"accounts"`
}
