package pgsql

import (
	"context"
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

// aliasedAccountColumns is accountColumns qualified with the "a" alias.
const aliasedAccountColumns = `a.account_id, a.company_id, a.code, a.name, a.account_group, a.nature,
		a.opening_balance, a.current_balance, a.phone, a.email, a.address, a.tax_id,
		a.credit_limit, a.credit_days, a.is_system, a.is_active,
		a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// BeginSnapshot opens a read-only REPEATABLE READ transaction so every query of
// one report sees the same committed state.
func (r *reportingRepository) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin report snapshot", err)
	}
	return tx, nil
}

// AccountActivityInTx aggregates non-reversed journal lines per account into prior and period columns.
// Inactive accounts are only included when a single account is requested.
func (r *reportingRepository) AccountActivityInTx(ctx context.Context, tx pgx.Tx, companyID string, filter portsrepo.ActivityFilter) ([]domain.AccountActivity, error) {
	natures := make([]string, 0, len(filter.Natures))
	for _, n := range filter.Natures {
		natures = append(natures, string(n))
	}

	query := `
		SELECT ` + aliasedAccountColumns + `,
			COALESCE(SUM(CASE WHEN $2::date IS NOT NULL AND jl.line_date < $2 THEN jl.debit END), 0) AS prior_debit,
			COALESCE(SUM(CASE WHEN $2::date IS NOT NULL AND jl.line_date < $2 THEN jl.credit END), 0) AS prior_credit,
			COALESCE(SUM(CASE WHEN $2::date IS NULL OR jl.line_date >= $2 THEN jl.debit END), 0) AS period_debit,
			COALESCE(SUM(CASE WHEN $2::date IS NULL OR jl.line_date >= $2 THEN jl.credit END), 0) AS period_credit
		FROM accounts a
		LEFT JOIN journal_lines jl
			ON jl.account_id = a.account_id
			AND jl.is_reversed = FALSE
			AND jl.line_date <= $3
		WHERE a.company_id = $1
			AND (a.is_active = TRUE OR $5 <> '')
			AND (COALESCE(cardinality($4::text[]), 0) = 0 OR a.nature = ANY($4))
			AND ($5 = '' OR a.account_id = $5)
		GROUP BY a.account_id
		ORDER BY a.account_group, a.name;
	`
	rows, err := tx.Query(ctx, query, companyID, filter.From, filter.To, natures, filter.AccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var m models.Account
		var priorDr, priorCr, periodDr, periodCr decimal.Decimal
		dest := append(accountScanTargets(&m), &priorDr, &priorCr, &periodDr, &periodCr)
		if err := rows.Scan(dest...); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		result = append(result, domain.AccountActivity{
			Account:       mapping.ToDomainAccount(m),
			PriorDebits:   priorDr,
			PriorCredits:  priorCr,
			PeriodDebits:  periodDr,
			PeriodCredits: periodCr,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return result, nil
}

// StatementEntriesInTx returns an account's live journal lines in date order with
// the names of the other accounts on each voucher as particulars.
func (r *reportingRepository) StatementEntriesInTx(ctx context.Context, tx pgx.Tx, companyID, accountID string, from, to *time.Time) ([]domain.StatementEntry, error) {
	query := `
		SELECT jl.line_id, jl.voucher_id, jl.account_id, jl.debit, jl.credit, jl.line_date, jl.narration,
			jl.is_reversed, jl.created_at, v.voucher_number, v.voucher_type,
			COALESCE((
				SELECT string_agg(DISTINCT oa.name, ', ' ORDER BY oa.name)
				FROM journal_lines ol
				JOIN accounts oa ON oa.account_id = ol.account_id
				WHERE ol.voucher_id = jl.voucher_id AND ol.account_id <> jl.account_id
			), '') AS particulars
		FROM journal_lines jl
		JOIN vouchers v ON v.voucher_id = jl.voucher_id
		WHERE v.company_id = $1
			AND jl.account_id = $2
			AND jl.is_reversed = FALSE
			AND ($3::date IS NULL OR jl.line_date >= $3)
			AND ($4::date IS NULL OR jl.line_date <= $4)
		ORDER BY jl.line_date, jl.created_at, jl.line_id;
	`
	rows, err := tx.Query(ctx, query, companyID, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query statement entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := []domain.StatementEntry{}
	for rows.Next() {
		var (
			m           models.JournalLine
			number      string
			voucherType string
			particulars string
		)
		if err := rows.Scan(
			&m.LineID,
			&m.VoucherID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.LineDate,
			&m.Narration,
			&m.IsReversed,
			&m.CreatedAt,
			&number,
			&voucherType,
			&particulars,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement row", err)
		}
		entries = append(entries, domain.StatementEntry{
			Line:          mapping.ToDomainJournalLine(m),
			VoucherNumber: number,
			VoucherType:   domain.VoucherType(voucherType),
			Particulars:   particulars,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating statement rows", err)
	}
	return entries, nil
}
