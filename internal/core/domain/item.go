package domain

import "github.com/shopspring/decimal"

// Item is a stock-keeping unit whose quantity is moved by item-bearing vouchers.
type Item struct {
	ItemID        string          `json:"itemID"`
	CompanyID     string          `json:"companyID"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Unit          string          `json:"unit"`
	Rate          decimal.Decimal `json:"rate"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStockLevel decimal.Decimal `json:"minStockLevel"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// IsLowOnStock reports whether stock has fallen to or below the reorder level.
func (i Item) IsLowOnStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStockLevel)
}

// StockMovement is a signed quantity change for one item.
type StockMovement struct {
	ItemID string
	Delta  decimal.Decimal
}
