package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	Group           *domain.AccountGroup
	IncludeInactive bool
}

// AccountUsage counts what references an account.
type AccountUsage struct {
	JournalLines        int
	ActivePartyVouchers int
}

// InUse reports whether anything references the account.
func (u AccountUsage) InUse() bool {
	return u.JournalLines > 0 || u.ActivePartyVouchers > 0
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a company's account by its identifier.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountByName looks an account up by case-insensitive name.
	FindAccountByName(ctx context.Context, companyID, name string) (*domain.Account, error)

	// ListAccounts retrieves the company's accounts ordered by group then name.
	ListAccounts(ctx context.Context, companyID string, filter AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Name or code collisions map to apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines account operations that run inside a caller's transaction.
type AccountTransactionSupport interface {
	// GetOrCreateAccountInTx upserts on (company_id, lower(name)) and returns the stored row.
	// The bool is true when this call inserted the row.
	GetOrCreateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, bool, error)

	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// AccountUsageInTx counts journal lines and live vouchers referencing the account.
	AccountUsageInTx(ctx context.Context, tx pgx.Tx, companyID, accountID string) (AccountUsage, error)

	// UpdateAccountInTx writes the mutable fields of an account.
	UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// DeactivateAccountInTx flips is_active off.
	DeactivateAccountInTx(ctx context.Context, tx pgx.Tx, companyID, accountID, userID string, now time.Time) error

	// UpdateAccountBalancesInTx adds signed deltas to the persisted current balances.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, companyID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
