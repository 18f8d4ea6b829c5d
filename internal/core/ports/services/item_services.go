package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InventorySvc is the stock collaborator the posting engine calls inside its transaction.
type InventorySvc interface {
	// AdjustStockInTx fails with ErrInsufficientStock or ErrItemNotFound.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, companyID, itemID string, delta decimal.Decimal) (decimal.Decimal, error)
}

// ItemSvcFacade manages stock items.
type ItemSvcFacade interface {
	InventorySvc
	CreateItem(ctx context.Context, companyID string, req dto.CreateItemRequest, userID string) (*domain.Item, error)
	GetItem(ctx context.Context, companyID, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context, companyID string, params dto.ListItemsParams) ([]domain.Item, error)
	UpdateItem(ctx context.Context, companyID, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error)
	DeactivateItem(ctx context.Context, companyID, itemID, userID string) error
	AdjustStock(ctx context.Context, companyID, itemID string, req dto.AdjustStockRequest, userID string) (*domain.Item, error)
}
