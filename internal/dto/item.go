package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create a stock item.
type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required,max=255"`
	SKU           string          `json:"sku" binding:"omitempty,max=64"`
	Unit          string          `json:"unit" binding:"omitempty,max=16"`
	Rate          decimal.Decimal `json:"rate"`
	OpeningStock  decimal.Decimal `json:"openingStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
}

// UpdateItemRequest is the allow-list of mutable item fields. Stock only moves
// through vouchers or the explicit adjustment endpoint.
type UpdateItemRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=255"`
	SKU           *string          `json:"sku" binding:"omitempty,max=64"`
	Unit          *string          `json:"unit" binding:"omitempty,max=16"`
	Rate          *decimal.Decimal `json:"rate"`
	MinStockLevel *decimal.Decimal `json:"minStockLevel"`
}

// AdjustStockRequest moves stock by a signed quantity.
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// ListItemsParams defines query parameters for listing items.
type ListItemsParams struct {
	LowStockOnly bool `form:"lowStock"`
}

// ItemResponse defines the data returned for an item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Rate          decimal.Decimal `json:"rate"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	LowStock      bool            `json:"lowStock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToItemResponse converts a domain.Item to ItemResponse DTO.
func ToItemResponse(it *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        it.ItemID,
		Name:          it.Name,
		SKU:           it.SKU,
		Unit:          it.Unit,
		Rate:          it.Rate,
		CurrentStock:  it.CurrentStock,
		MinStockLevel: it.MinStockLevel,
		LowStock:      it.IsLowOnStock(),
		IsActive:      it.IsActive,
		CreatedAt:     it.CreatedAt,
	}
}
