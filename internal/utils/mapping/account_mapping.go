package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		CompanyID:      d.CompanyID,
		Code:           d.Code,
		Name:           d.Name,
		AccountGroup:   string(d.Group),
		Nature:         string(d.Nature),
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		Phone:          d.Phone,
		Email:          d.Email,
		Address:        d.Address,
		TaxID:          d.TaxID,
		CreditLimit:    d.CreditLimit,
		CreditDays:     d.CreditDays,
		IsSystem:       d.IsSystem,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		CompanyID:      m.CompanyID,
		Code:           m.Code,
		Name:           m.Name,
		Group:          domain.AccountGroup(m.AccountGroup),
		Nature:         domain.AccountNature(m.Nature),
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		TaxID:          m.TaxID,
		CreditLimit:    m.CreditLimit,
		CreditDays:     m.CreditDays,
		IsSystem:       m.IsSystem,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
