package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, company_id, code, name, account_group, nature, opening_balance, current_balance,
		phone, email, address, tax_id, credit_limit, credit_days, is_system, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// accountScanTargets lists the destinations matching accountColumns, in order.
func accountScanTargets(m *models.Account) []any {
	return []any{
		&m.AccountID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.AccountGroup,
		&m.Nature,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.TaxID,
		&m.CreditLimit,
		&m.CreditDays,
		&m.IsSystem,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	}
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	if err := row.Scan(accountScanTargets(&m)...); err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func insertAccount(ctx context.Context, q querier, m models.Account, onConflict string) pgx.Row {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		` + onConflict + `
		RETURNING account_id;
	`
	return q.QueryRow(ctx, query,
		m.AccountID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.AccountGroup,
		m.Nature,
		m.OpeningBalance,
		m.CurrentBalance,
		m.Phone,
		m.Email,
		m.Address,
		m.TaxID,
		m.CreditLimit,
		m.CreditDays,
		m.IsSystem,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	var id string
	if err := insertAccount(ctx, r.Pool, mapping.ToModelAccount(account), "").Scan(&id); err != nil {
		return mapWriteError(err, "account "+account.Name)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND account_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	return &acc, nil
}

func findAccountByName(ctx context.Context, q querier, companyID, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND lower(name) = lower($2);`
	acc, err := scanAccount(q.QueryRow(ctx, query, companyID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by name", err)
	}
	return &acc, nil
}

// FindAccountByName looks an account up by case-insensitive name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, companyID, name string) (*domain.Account, error) {
	return findAccountByName(ctx, r.Pool, companyID, name)
}

// ListAccounts retrieves a company's accounts ordered by group and name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1`
	args := []any{companyID}
	if filter.Group != nil {
		args = append(args, string(*filter.Group))
		query += ` AND account_group = $` + strconv.Itoa(len(args))
	}
	if !filter.IncludeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY account_group, name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts for company "+companyID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// GetOrCreateAccountInTx inserts the account unless one with the same name already exists,
// then returns whichever row is stored. Concurrent callers converge on one row.
func (r *PgxAccountRepository) GetOrCreateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, bool, error) {
	var id string
	err := insertAccount(ctx, tx, mapping.ToModelAccount(account), "ON CONFLICT (company_id, lower(name)) DO NOTHING").Scan(&id)
	switch {
	case err == nil:
		return &account, true, nil
	case errors.Is(err, pgx.ErrNoRows):
		// lost the race or the account already existed
	default:
		return nil, false, mapWriteError(err, "account "+account.Name)
	}

	existing, err := findAccountByName(ctx, tx, account.CompanyID, account.Name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Must be called within a transaction. Missing IDs are simply absent from the map.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	// ORDER BY keeps lock acquisition order stable across concurrent postings.
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, companyID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs for update", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", err)
	}

	if len(accountsMap) != len(accountIDs) {
		slog.DebugContext(ctx, "Some accounts requested for update lock were not found",
			slog.String("company_id", companyID),
			slog.Int("requested", len(accountIDs)),
			slog.Int("found", len(accountsMap)))
	}
	return accountsMap, nil
}

// AccountUsageInTx counts what still references the account.
func (r *PgxAccountRepository) AccountUsageInTx(ctx context.Context, tx pgx.Tx, companyID, accountID string) (portsrepo.AccountUsage, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM journal_lines jl
			   JOIN vouchers v ON v.voucher_id = jl.voucher_id
			  WHERE v.company_id = $1 AND jl.account_id = $2 AND jl.is_reversed = FALSE),
			(SELECT COUNT(*) FROM vouchers
			  WHERE company_id = $1 AND party_account_id = $2 AND status <> 'CANCELLED');
	`
	var usage portsrepo.AccountUsage
	if err := tx.QueryRow(ctx, query, companyID, accountID).Scan(&usage.JournalLines, &usage.ActivePartyVouchers); err != nil {
		return portsrepo.AccountUsage{}, apperrors.NewAppError(500, "failed to count usage of account "+accountID, err)
	}
	return usage, nil
}

// UpdateAccountInTx writes the mutable fields of an account.
func (r *PgxAccountRepository) UpdateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $3, code = $4, opening_balance = $5, current_balance = $6,
		    phone = $7, email = $8, address = $9, tax_id = $10, credit_limit = $11, credit_days = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE company_id = $1 AND account_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CompanyID,
		m.AccountID,
		m.Name,
		m.Code,
		m.OpeningBalance,
		m.CurrentBalance,
		m.Phone,
		m.Email,
		m.Address,
		m.TaxID,
		m.CreditLimit,
		m.CreditDays,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "account "+account.Name)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccountInTx marks an account inactive.
func (r *PgxAccountRepository) DeactivateAccountInTx(ctx context.Context, tx pgx.Tx, companyID, accountID, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND account_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query, companyID, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountBalancesInTx updates balances for multiple accounts within a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, companyID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET current_balance = current_balance + $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1 AND account_id = $2;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range balanceChanges {
		batch.Queue(query, companyID, accountID, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range balanceChanges {
		cmdTag, err := br.Exec()
		if err != nil {
			return apperrors.NewAppError(500, "failed to update account balance", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: balance update matched no account", apperrors.ErrNotFound)
		}
	}
	return nil
}
