package domain

import "time"

// Company is the tenant that owns a set of books.
type Company struct {
	CompanyID          string    `json:"companyID"`
	Name               string    `json:"name"`
	FinancialYearStart time.Time `json:"financialYearStart"`
	IsActive           bool      `json:"isActive"`
	AuditFields
}
