package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// LedgerReaderSvc defines read operations for ledger accounts
type LedgerReaderSvc interface {
	// GetAccount retrieves a company's account by ID.
	GetAccount(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// ListAccounts lists the company's accounts.
	ListAccounts(ctx context.Context, companyID string, params dto.ListAccountsParams) ([]domain.Account, error)

	// ListGroups returns the closed group → nature table.
	ListGroups() []domain.GroupInfo
}

// LedgerWriterSvc defines write operations for ledger accounts
type LedgerWriterSvc interface {
	// CreateAccount creates a named account; fails with ErrDuplicateAccount or ErrInvalidAccountGroup.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount applies the allow-listed fields of req.
	UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount hides an unused account; fails with ErrAccountInUse otherwise.
	DeactivateAccount(ctx context.Context, companyID, accountID, userID string) error

	// GetOrCreateAccount resolves an account by case-insensitive name, creating it on first use.
	GetOrCreateAccount(ctx context.Context, companyID, name, group, userID string) (*domain.Account, error)

	// ProvisionSystemAccounts creates the starter accounts; safe to call repeatedly.
	ProvisionSystemAccounts(ctx context.Context, companyID, userID string) ([]domain.Account, error)
}

// LedgerPostingSupport is used by the posting engine inside its transaction.
type LedgerPostingSupport interface {
	// GetOrCreateAccountInTx is GetOrCreateAccount on the caller's transaction.
	GetOrCreateAccountInTx(ctx context.Context, tx pgx.Tx, companyID, name string, group domain.AccountGroup, userID string) (*domain.Account, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerPostingSupport
}
