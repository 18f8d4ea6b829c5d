package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:        d.ItemID,
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		SKU:           d.SKU,
		Unit:          d.Unit,
		Rate:          d.Rate,
		CurrentStock:  d.CurrentStock,
		MinStockLevel: d.MinStockLevel,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to a domain Item
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:        m.ItemID,
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		SKU:           m.SKU,
		Unit:          m.Unit,
		Rate:          m.Rate,
		CurrentStock:  m.CurrentStock,
		MinStockLevel: m.MinStockLevel,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
