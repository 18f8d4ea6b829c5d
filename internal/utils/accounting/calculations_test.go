package accounting

import (
	"testing"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClosingBalance(t *testing.T) {
	tests := []struct {
		name    string
		nature  domain.AccountNature
		opening string
		debits  string
		credits string
		want    domain.Balance
	}{
		{"income credited", domain.Income, "0", "0", "1000", domain.Balance{Amount: d("1000"), Side: domain.Credit}},
		{"asset debited", domain.Asset, "0", "500", "0", domain.Balance{Amount: d("500"), Side: domain.Debit}},
		{"asset overdrawn flips to credit", domain.Asset, "100", "0", "250", domain.Balance{Amount: d("150"), Side: domain.Credit}},
		{"liability paid down past zero flips to debit", domain.Liability, "200", "300", "0", domain.Balance{Amount: d("100"), Side: domain.Debit}},
		{"expense with refund", domain.Expense, "0", "400", "100", domain.Balance{Amount: d("300"), Side: domain.Debit}},
		{"equity with opening", domain.Equity, "1000", "0", "500", domain.Balance{Amount: d("1500"), Side: domain.Credit}},
		{"zero sits on normal side", domain.Income, "0", "10", "10", domain.Balance{Amount: decimal.Zero, Side: domain.Credit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosingBalance(tt.nature, d(tt.opening), d(tt.debits), d(tt.credits))
			assert.True(t, tt.want.Amount.Equal(got.Amount), "amount: want %s got %s", tt.want.Amount, got.Amount)
			assert.Equal(t, tt.want.Side, got.Side)
		})
	}
}

func TestRunningBalance(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: d("500"), Credit: decimal.Zero},
		{Debit: decimal.Zero, Credit: d("200")},
		{Debit: decimal.Zero, Credit: d("400")},
	}
	signed := decimal.Zero
	var got []string
	for _, l := range lines {
		signed = RunningBalance(domain.Asset, signed, l)
		got = append(got, signed.String())
	}
	assert.Equal(t, []string{"500", "300", "-100"}, got)
	assert.Equal(t, domain.Credit, Present(domain.Asset, signed).Side)
}

func TestValidateLines(t *testing.T) {
	balanced := []domain.JournalLine{
		{AccountID: "a", Debit: d("300"), Credit: decimal.Zero},
		{AccountID: "b", Debit: decimal.Zero, Credit: d("100.50")},
		{AccountID: "c", Debit: decimal.Zero, Credit: d("199.50")},
	}
	assert.NoError(t, ValidateLines(balanced))

	unbalanced := []domain.JournalLine{
		{AccountID: "a", Debit: d("300"), Credit: decimal.Zero},
		{AccountID: "b", Debit: decimal.Zero, Credit: d("299.99")},
	}
	err := ValidateLines(unbalanced)
	assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	twoSided := []domain.JournalLine{
		{AccountID: "a", Debit: d("10"), Credit: d("10")},
		{AccountID: "b", Debit: decimal.Zero, Credit: decimal.Zero},
	}
	assert.ErrorIs(t, ValidateLines(twoSided), apperrors.ErrValidation)

	assert.ErrorIs(t, ValidateLines(balanced[:1]), apperrors.ErrUnbalancedEntry)
}

func TestValidateLines_RefusesAmountsFinerThanStoredScale(t *testing.T) {
	// balanced in memory, but 0.00005 + 0.00005 would be stored as 0.0001 + 0.0001
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: d("0.00005"), Credit: decimal.Zero},
		{AccountID: "b", Debit: d("0.00005"), Credit: decimal.Zero},
		{AccountID: "c", Debit: decimal.Zero, Credit: d("0.0001")},
	}
	err := ValidateLines(lines)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrUnbalancedEntry)

	atScale := []domain.JournalLine{
		{AccountID: "a", Debit: d("0.0001"), Credit: decimal.Zero},
		{AccountID: "c", Debit: decimal.Zero, Credit: d("0.00010")},
	}
	assert.NoError(t, ValidateLines(atScale))
}

func TestEffect(t *testing.T) {
	debit := domain.JournalLine{Debit: d("40"), Credit: decimal.Zero}
	credit := domain.JournalLine{Debit: decimal.Zero, Credit: d("40")}

	assert.True(t, Effect(domain.Asset, debit).Equal(d("40")))
	assert.True(t, Effect(domain.Asset, credit).Equal(d("-40")))
	assert.True(t, Effect(domain.Liability, credit).Equal(d("40")))
	assert.True(t, Effect(domain.Income, debit).Equal(d("-40")))
}
