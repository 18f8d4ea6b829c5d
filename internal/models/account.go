package models

import (
	"github.com/shopspring/decimal"
)

// Account is the accounts table row.
// Nature is stored next to the group so reports can filter without reclassifying.
type Account struct {
	AccountID      string          `db:"account_id"`
	CompanyID      string          `db:"company_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	AccountGroup   string          `db:"account_group"`
	Nature         string          `db:"nature"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Phone          string          `db:"phone"`
	Email          string          `db:"email"`
	Address        string          `db:"address"`
	TaxID          string          `db:"tax_id"`
	CreditLimit    decimal.Decimal `db:"credit_limit"`
	CreditDays     int             `db:"credit_days"`
	IsSystem       bool            `db:"is_system"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
