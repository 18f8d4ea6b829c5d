package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAuditFields_Touch(t *testing.T) {
	created := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	a := domain.NewAuditFields("alice", created)

	later := created.Add(2 * time.Hour)
	a.Touch("bob", later)

	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, "alice", a.CreatedBy)
	assert.Equal(t, later, a.LastUpdatedAt)
	assert.Equal(t, "bob", a.LastUpdatedBy)
}

func TestLineAmount_RoundsToStoredScale(t *testing.T) {
	amount := domain.LineAmount(decimal.RequireFromString("1.5"), decimal.RequireFromString("0.3333"), decimal.Zero)

	assert.Equal(t, "0.5", amount.String())
	assert.True(t, domain.FitsScale(amount))
	assert.False(t, domain.FitsScale(decimal.RequireFromString("0.00001")))
}
