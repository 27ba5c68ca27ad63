package accounting

import (
	"errors"
	"fmt"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum allowed difference between total debits
// and total credits of a journal, in currency units.
var BalanceTolerance = decimal.RequireFromString("0.0001")

// ErrUnbalanced indicates that a journal's debits and credits do not match
// within tolerance. A journal failing this check must not be committed.
var ErrUnbalanced = errors.New("journal lines do not balance")

// Totals sums the debit and credit sides of a set of journal lines.
func Totals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateJournalBalance checks that lines form a valid double-entry
// posting: at least two lines, non-negative sides, and debit and credit
// totals equal within BalanceTolerance.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines, got %d", len(lines))
	}

	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("journal line %d has a negative amount", line.LineOrder)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("journal line %d has neither a debit nor a credit", line.LineOrder)
		}
	}

	debits, credits := Totals(lines)
	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s", ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}
