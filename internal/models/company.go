package models

import "time"

// Company is the companies table row.
type Company struct {
	CompanyID          string    `db:"company_id"`
	Name               string    `db:"name"`
	FinancialYearStart time.Time `db:"financial_year_start"`
	IsActive           bool      `db:"is_active"`
	AuditFields
}
