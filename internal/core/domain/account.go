package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountNature defines the fundamental accounting nature of an account.
type AccountNature string

const (
	Asset     AccountNature = "ASSET"
	Liability AccountNature = "LIABILITY"
	Equity    AccountNature = "EQUITY"
	Income    AccountNature = "INCOME"
	Expense   AccountNature = "EXPENSE"
)

// Side is one column of a ledger: debit or credit.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// Opposite returns the other column.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// NormalSide returns the side on which an account of this nature increases.
// Every balance computation in the code base derives its sign from here.
func (n AccountNature) NormalSide() Side {
	switch n {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// IsValid reports whether n is one of the five natures.
func (n AccountNature) IsValid() bool {
	switch n {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a ledger within a company's books.
type Account struct {
	AccountID      string          `json:"accountID"`
	CompanyID      string          `json:"companyID"`
	Code           string          `json:"code"` // derived from Name, unique per company
	Name           string          `json:"name"`
	Group          AccountGroup    `json:"group"`
	Nature         AccountNature   `json:"nature"`         // derived from Group by the classifier
	OpeningBalance decimal.Decimal `json:"openingBalance"` // signed, in the nature's normal direction
	CurrentBalance decimal.Decimal `json:"currentBalance"` // signed, maintained by postings
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	TaxID          string          `json:"taxID"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CreditDays     int             `json:"creditDays"`
	IsSystem       bool            `json:"isSystem"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// AccountCode derives the company-unique code for an account name:
// trimmed, upper-cased, whitespace runs replaced by a single underscore.
func AccountCode(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToUpper(strings.TrimSpace(name)), "_")
}

// Names of the accounts every company owns or that postings create on first use.
const (
	CashAccountName              = "Cash in Hand"
	CapitalAccountName           = "Capital Account"
	OpeningBalanceAdjustmentName = "Opening Balance Adjustment"
	SalesAccountName             = "Sales Account"
	PurchaseAccountName          = "Purchase Account"
)

// SystemAccountSpec names an account and its group.
type SystemAccountSpec struct {
	Name  string
	Group AccountGroup
}

// SystemAccounts is the starter set provisioned for every new company.
func SystemAccounts() []SystemAccountSpec {
	return []SystemAccountSpec{
		{Name: CashAccountName, Group: GroupCashInHand},
		{Name: CapitalAccountName, Group: GroupCapital},
		{Name: OpeningBalanceAdjustmentName, Group: GroupCapital},
	}
}
