package pgsql

import (
	"context"
	"errors"
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

const itemColumns = `item_id, company_id, name, sku, unit, rate, current_stock, min_stock_level, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxItemRepository struct {
	BaseRepository
}

func newPgxItemRepository(pool *pgxpool.Pool) *PgxItemRepository {
	return &PgxItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ItemRepositoryWithTx = (*PgxItemRepository)(nil)

func scanItem(row pgx.Row) (domain.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.CompanyID,
		&m.Name,
		&m.SKU,
		&m.Unit,
		&m.Rate,
		&m.CurrentStock,
		&m.MinStockLevel,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Item{}, err
	}
	return mapping.ToDomainItem(m), nil
}

// SaveItem inserts a new item.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.ItemID,
		m.CompanyID,
		m.Name,
		m.SKU,
		m.Unit,
		m.Rate,
		m.CurrentStock,
		m.MinStockLevel,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "item "+m.Name)
	}
	return nil
}

// FindItemByID retrieves an item by its ID.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, companyID, itemID string) (*domain.Item, error) {
	item, err := scanItem(r.Pool.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE company_id = $1 AND item_id = $2;`, companyID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find item by ID "+itemID, err)
	}
	return &item, nil
}

// ListItems retrieves a company's active items, optionally only those at or below their reorder level.
func (r *PgxItemRepository) ListItems(ctx context.Context, companyID string, lowStockOnly bool) ([]domain.Item, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE company_id = $1 AND is_active = TRUE
			AND ($2 = FALSE OR current_stock <= min_stock_level)
		ORDER BY name;
	`, companyID, lowStockOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list items for company "+companyID, err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows", err)
	}
	return items, nil
}

// UpdateItem writes the descriptive fields of an item. Stock is never touched here.
func (r *PgxItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE items
		SET name = $3, sku = $4, unit = $5, rate = $6, min_stock_level = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1 AND item_id = $2;
	`, m.CompanyID, m.ItemID, m.Name, m.SKU, m.Unit, m.Rate, m.MinStockLevel, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "item "+m.Name)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}

// DeactivateItem marks an item inactive.
func (r *PgxItemRepository) DeactivateItem(ctx context.Context, companyID, itemID, userID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE items
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND item_id = $2;
	`, companyID, itemID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate item "+itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}

// AdjustStockInTx applies delta in a single conditional update so stock can never
// be driven below zero, even by concurrent postings.
func (r *PgxItemRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, companyID, itemID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var newStock decimal.Decimal
	err := tx.QueryRow(ctx, `
		UPDATE items
		SET current_stock = current_stock + $3
		WHERE company_id = $1 AND item_id = $2 AND current_stock + $3 >= 0
		RETURNING current_stock;
	`, companyID, itemID, delta).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, apperrors.NewAppError(500, "failed to adjust stock of item "+itemID, err)
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE company_id = $1 AND item_id = $2);`, companyID, itemID).Scan(&exists); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to check item "+itemID, err)
	}
	if !exists {
		return decimal.Zero, apperrors.ErrItemNotFound
	}
	return decimal.Zero, apperrors.ErrInsufficientStock
}
