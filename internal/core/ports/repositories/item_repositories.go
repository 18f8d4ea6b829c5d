package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ItemRepository defines persistence for stock items.
type ItemRepository interface {
	SaveItem(ctx context.Context, item domain.Item) error
	FindItemByID(ctx context.Context, companyID, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context, companyID string, lowStockOnly bool) ([]domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) error
	DeactivateItem(ctx context.Context, companyID, itemID, userID string, now time.Time) error

	// AdjustStockInTx applies a signed delta and returns the new stock level.
	// It fails with apperrors.ErrItemNotFound or apperrors.ErrInsufficientStock and
	// never lets stock go negative.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, companyID, itemID string, delta decimal.Decimal) (decimal.Decimal, error)
}

// ItemRepositoryWithTx extends ItemRepository with transaction capabilities
type ItemRepositoryWithTx interface {
	ItemRepository
	TransactionManager
}
