package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new ledger account.
// The owning company always comes from the session, never from the body.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	Group          string          `json:"group" binding:"required,accountgroup"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Phone          string          `json:"phone" binding:"omitempty,max=32"`
	Email          string          `json:"email" binding:"omitempty,email"`
	Address        string          `json:"address"`
	TaxID          string          `json:"taxID" binding:"omitempty,max=32"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CreditDays     int             `json:"creditDays" binding:"gte=0"`
}

// UpdateAccountRequest is the allow-list of mutable account fields.
// Pointers distinguish "not provided" from zero values; group and nature are immutable.
type UpdateAccountRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=255"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
	Phone          *string          `json:"phone" binding:"omitempty,max=32"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Address        *string          `json:"address"`
	TaxID          *string          `json:"taxID" binding:"omitempty,max=32"`
	CreditLimit    *decimal.Decimal `json:"creditLimit"`
	CreditDays     *int             `json:"creditDays" binding:"omitempty,gte=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string               `json:"accountID"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	Group          domain.AccountGroup  `json:"group"`
	Nature         domain.AccountNature `json:"nature"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	CurrentBalance domain.Balance       `json:"currentBalance"`
	Phone          string               `json:"phone,omitempty"`
	Email          string               `json:"email,omitempty"`
	Address        string               `json:"address,omitempty"`
	TaxID          string               `json:"taxID,omitempty"`
	CreditLimit    decimal.Decimal      `json:"creditLimit"`
	CreditDays     int                  `json:"creditDays"`
	IsSystem       bool                 `json:"isSystem"`
	IsActive       bool                 `json:"isActive"`
	CreatedAt      time.Time            `json:"createdAt"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
// currentBalance is presented with the same side rule the reports use.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		Group:          acc.Group,
		Nature:         acc.Nature,
		OpeningBalance: acc.OpeningBalance,
		CurrentBalance: accounting.Present(acc.Nature, acc.CurrentBalance),
		Phone:          acc.Phone,
		Email:          acc.Email,
		Address:        acc.Address,
		TaxID:          acc.TaxID,
		CreditLimit:    acc.CreditLimit,
		CreditDays:     acc.CreditDays,
		IsSystem:       acc.IsSystem,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Group           string `form:"group" binding:"omitempty,accountgroup"`
	IncludeInactive bool   `form:"includeInactive"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
