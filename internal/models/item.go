package models

import "github.com/shopspring/decimal"

// Item is the items table row.
type Item struct {
	ItemID        string          `db:"item_id"`
	CompanyID     string          `db:"company_id"`
	Name          string          `db:"name"`
	SKU           string          `db:"sku"`
	Unit          string          `db:"unit"`
	Rate          decimal.Decimal `db:"rate"`
	CurrentStock  decimal.Decimal `db:"current_stock"`
	MinStockLevel decimal.Decimal `db:"min_stock_level"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
