package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Movement is Σcredit − Σdebit.
func Movement(debits, credits decimal.Decimal) decimal.Decimal {
	return credits.Sub(debits)
}

// SignedBalance applies debits and credits to an opening balance and returns the
// result measured in the nature's normal direction. Credit-normal natures
// (LIABILITY, EQUITY, INCOME) grow with the movement, debit-normal natures
// (ASSET, EXPENSE) shrink with it.
func SignedBalance(nature domain.AccountNature, opening, debits, credits decimal.Decimal) decimal.Decimal {
	movement := Movement(debits, credits)
	if nature.NormalSide() == domain.Credit {
		return opening.Add(movement)
	}
	return opening.Sub(movement)
}

// Present labels a signed balance: the nature's normal side when non-negative,
// the opposite side otherwise. The amount is always non-negative.
func Present(nature domain.AccountNature, signed decimal.Decimal) domain.Balance {
	side := nature.NormalSide()
	if signed.IsNegative() {
		side = side.Opposite()
	}
	return domain.Balance{Amount: signed.Abs(), Side: side}
}

// ClosingBalance is the single balance rule used by every report.
func ClosingBalance(nature domain.AccountNature, opening, debits, credits decimal.Decimal) domain.Balance {
	return Present(nature, SignedBalance(nature, opening, debits, credits))
}

// Effect is the signed change one line makes to an account of the given nature.
func Effect(nature domain.AccountNature, line domain.JournalLine) decimal.Decimal {
	return SignedBalance(nature, decimal.Zero, line.Debit, line.Credit)
}

// RunningBalance steps a signed balance forward by one journal line.
func RunningBalance(nature domain.AccountNature, signed decimal.Decimal, line domain.JournalLine) decimal.Decimal {
	return SignedBalance(nature, signed, line.Debit, line.Credit)
}

// ValidateLines enforces the double-entry law on a set of lines: every line is
// one-sided and positive, there are at least two, and Σdebit equals Σcredit.
// Amounts finer than domain.AmountScale are refused so the stored lines balance too.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: at least two journal lines are required", apperrors.ErrUnbalancedEntry)
	}
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if !domain.FitsScale(l.Debit) || !domain.FitsScale(l.Credit) {
			return fmt.Errorf("%w: line %d has more than %d decimal places", apperrors.ErrValidation, i+1, domain.AmountScale)
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}
	}
	debits, credits := domain.JournalTotals(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}
