package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const voucherColumns = `voucher_id, company_id, voucher_number, voucher_type, voucher_date, party_account_id,
		total_amount, amount_paid, narration, reference_number, due_date, status, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for vouchers, their items and journal lines.
func newPgxVoucherRepository(pool *pgxpool.Pool) *PgxVoucherRepository {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

func scanVoucher(row pgx.Row) (domain.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.CompanyID,
		&m.VoucherNumber,
		&m.VoucherType,
		&m.VoucherDate,
		&m.PartyAccountID,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.Narration,
		&m.ReferenceNumber,
		&m.DueDate,
		&m.Status,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Voucher{}, err
	}
	return mapping.ToDomainVoucher(m), nil
}

// loadVoucherChildren attaches items and journal lines to a voucher header.
func loadVoucherChildren(ctx context.Context, q querier, v *domain.Voucher) error {
	itemRows, err := q.Query(ctx, `
		SELECT voucher_item_id, voucher_id, item_id, quantity, rate, discount, amount
		FROM voucher_items
		WHERE voucher_id = $1
		ORDER BY voucher_item_id;
	`, v.VoucherID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query items for voucher "+v.VoucherID, err)
	}
	for itemRows.Next() {
		var m models.VoucherItem
		if err := itemRows.Scan(&m.VoucherItemID, &m.VoucherID, &m.ItemID, &m.Quantity, &m.Rate, &m.Discount, &m.Amount); err != nil {
			itemRows.Close()
			return apperrors.NewAppError(500, "failed to scan voucher item row", err)
		}
		v.Items = append(v.Items, mapping.ToDomainVoucherItem(m))
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating voucher item rows", err)
	}

	lineRows, err := q.Query(ctx, `
		SELECT line_id, voucher_id, account_id, debit, credit, line_date, narration, is_reversed, created_at
		FROM journal_lines
		WHERE voucher_id = $1
		ORDER BY created_at, line_id;
	`, v.VoucherID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query journal lines for voucher "+v.VoucherID, err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var m models.JournalLine
		if err := lineRows.Scan(&m.LineID, &m.VoucherID, &m.AccountID, &m.Debit, &m.Credit, &m.LineDate, &m.Narration, &m.IsReversed, &m.CreatedAt); err != nil {
			return apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		v.Lines = append(v.Lines, mapping.ToDomainJournalLine(m))
	}
	if err := lineRows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return nil
}

func findVoucher(ctx context.Context, q querier, companyID, voucherID, suffix string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE company_id = $1 AND voucher_id = $2 ` + suffix + `;`
	v, err := scanVoucher(q.QueryRow(ctx, query, companyID, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher by ID "+voucherID, err)
	}
	if err := loadVoucherChildren(ctx, q, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// FindVoucherByID retrieves a voucher together with its items and journal lines.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, companyID, voucherID string) (*domain.Voucher, error) {
	return findVoucher(ctx, r.Pool, companyID, voucherID, "")
}

// FindVoucherForUpdate locks the voucher row and loads it with its children.
func (r *PgxVoucherRepository) FindVoucherForUpdate(ctx context.Context, tx pgx.Tx, companyID, voucherID string) (*domain.Voucher, error) {
	return findVoucher(ctx, tx, companyID, voucherID, "FOR UPDATE")
}

// ListVouchers retrieves a page of voucher headers using keyset pagination.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, companyID string, filter domain.VoucherFilter, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether there is a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE company_id = $1`
	args := []any{companyID}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Type != nil {
		query += ` AND voucher_type = ` + next(string(*filter.Type))
	}
	if filter.Status != nil {
		query += ` AND status = ` + next(string(*filter.Status))
	}
	if filter.FromDate != nil {
		query += ` AND voucher_date >= ` + next(*filter.FromDate)
	}
	if filter.ToDate != nil {
		query += ` AND voucher_date <= ` + next(*filter.ToDate)
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (voucher_date, created_at, voucher_id) < (` +
			next(cursor.Date) + `, ` + next(cursor.CreatedAt) + `, ` + next(cursor.ID) + `)`
	}
	query += ` ORDER BY voucher_date DESC, created_at DESC, voucher_id DESC LIMIT ` + next(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vouchers for company "+companyID, err)
	}
	defer rows.Close()

	vouchers := make([]domain.Voucher, 0, fetchLimit)
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}

	var nextTokenVal *string
	if len(vouchers) > limit {
		last := vouchers[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.VoucherID})
		nextTokenVal = &token
		vouchers = vouchers[:limit]
	}
	return vouchers, nextTokenVal, nil
}

// SummarizeVouchers counts and totals non-cancelled vouchers per type.
func (r *PgxVoucherRepository) SummarizeVouchers(ctx context.Context, companyID string, from, to *time.Time) ([]domain.VoucherTypeCount, error) {
	query := `
		SELECT voucher_type, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM vouchers
		WHERE company_id = $1
			AND status <> 'CANCELLED'
			AND ($2::date IS NULL OR voucher_date >= $2)
			AND ($3::date IS NULL OR voucher_date <= $3)
		GROUP BY voucher_type
		ORDER BY voucher_type;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to summarize vouchers", err)
	}
	defer rows.Close()

	var result []domain.VoucherTypeCount
	for rows.Next() {
		var (
			row domain.VoucherTypeCount
			t   string
		)
		if err := rows.Scan(&t, &row.Count, &row.TotalAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher summary row", err)
		}
		row.Type = domain.VoucherType(t)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher summary rows", err)
	}
	return result, nil
}

// NextVoucherSequenceInTx serialises numbering per company by locking the company row,
// so two concurrent postings of the same type can never draw the same number.
func (r *PgxVoucherRepository) NextVoucherSequenceInTx(ctx context.Context, tx pgx.Tx, companyID string, voucherType domain.VoucherType) (int, error) {
	var locked string
	err := tx.QueryRow(ctx, `SELECT company_id FROM companies WHERE company_id = $1 FOR UPDATE;`, companyID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return 0, apperrors.NewAppError(500, "failed to lock company "+companyID, err)
	}

	var count int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM vouchers WHERE company_id = $1 AND voucher_type = $2;`,
		companyID, string(voucherType)).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count vouchers", err)
	}
	return count + 1, nil
}

// OpeningBalanceExistsInTx reports whether the company already has an opening balance voucher.
func (r *PgxVoucherRepository) OpeningBalanceExistsInTx(ctx context.Context, tx pgx.Tx, companyID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM vouchers
			WHERE company_id = $1 AND voucher_type = 'OPENING_BALANCE' AND status <> 'CANCELLED'
		);
	`, companyID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check opening balance", err)
	}
	return exists, nil
}

// InsertVoucherInTx inserts the voucher header.
func (r *PgxVoucherRepository) InsertVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.VoucherID,
		m.CompanyID,
		m.VoucherNumber,
		m.VoucherType,
		m.VoucherDate,
		m.PartyAccountID,
		m.TotalAmount,
		m.AmountPaid,
		m.Narration,
		m.ReferenceNumber,
		m.DueDate,
		m.Status,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "voucher "+m.VoucherNumber)
	}
	return nil
}

// InsertVoucherItemsInTx batch-inserts line items.
func (r *PgxVoucherRepository) InsertVoucherItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.VoucherItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO voucher_items (voucher_item_id, voucher_id, item_id, quantity, rate, discount, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, it := range items {
		m := mapping.ToModelVoucherItem(it)
		batch.Queue(query, m.VoucherItemID, m.VoucherID, m.ItemID, m.Quantity, m.Rate, m.Discount, m.Amount)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert voucher items", err)
	}
	return nil
}

// InsertJournalLinesInTx batch-inserts journal lines.
func (r *PgxVoucherRepository) InsertJournalLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_lines (line_id, voucher_id, account_id, debit, credit, line_date, narration, is_reversed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		batch.Queue(query, m.LineID, m.VoucherID, m.AccountID, m.Debit, m.Credit, m.LineDate, m.Narration, m.IsReversed, m.CreatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines", err)
	}
	return nil
}

// MarkVoucherCancelledInTx cancels the voucher and flags its journal lines reversed.
func (r *PgxVoucherRepository) MarkVoucherCancelledInTx(ctx context.Context, tx pgx.Tx, companyID, voucherID, userID string, now time.Time) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE vouchers
		SET status = 'CANCELLED', is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND voucher_id = $2;
	`, companyID, voucherID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel voucher "+voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE journal_lines SET is_reversed = TRUE WHERE voucher_id = $1;`, voucherID); err != nil {
		return apperrors.NewAppError(500, "failed to reverse journal lines of voucher "+voucherID, err)
	}
	return nil
}

// UpdateVoucherInTx writes the editable and settlement fields. Line dates follow the voucher date.
func (r *PgxVoucherRepository) UpdateVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	cmdTag, err := tx.Exec(ctx, `
		UPDATE vouchers
		SET voucher_date = $3, narration = $4, reference_number = $5, due_date = $6,
		    amount_paid = $7, status = $8, last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $1 AND voucher_id = $2;
	`,
		m.CompanyID,
		m.VoucherID,
		m.VoucherDate,
		m.Narration,
		m.ReferenceNumber,
		m.DueDate,
		m.AmountPaid,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher "+voucher.VoucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE journal_lines SET line_date = $2 WHERE voucher_id = $1;`, m.VoucherID, m.VoucherDate); err != nil {
		return apperrors.NewAppError(500, "failed to move journal line dates of voucher "+voucher.VoucherID, err)
	}
	return nil
}
