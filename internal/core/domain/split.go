package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitSumTolerance is the maximum allowed difference between the sum of
// split amounts and the transaction total.
var SplitSumTolerance = decimal.RequireFromString("0.005")

// Split divides part of a transaction's amount to one category, optionally
// overriding the transaction-level default offset account for that line only.
type Split struct {
	CategoryID      string          `json:"categoryID"`
	OffsetAccountID *string         `json:"offsetAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
}

// SplitSet is an ordered list of splits applied to one transaction.
type SplitSet []Split

// Sum returns the total of all split amounts.
func (s SplitSet) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, sp := range s {
		total = total.Add(sp.Amount)
	}
	return total
}

// Validate checks that every split carries a category and a positive amount,
// and that the split amounts sum to the transaction total within tolerance.
func (s SplitSet) Validate(total decimal.Decimal) error {
	if len(s) == 0 {
		return nil
	}
	for i, sp := range s {
		if sp.CategoryID == "" {
			return fmt.Errorf("split %d is missing a category", i)
		}
		if sp.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("split %d amount must be positive, got %s", i, sp.Amount.String())
		}
	}
	if diff := s.Sum().Sub(total).Abs(); diff.GreaterThan(SplitSumTolerance) {
		return fmt.Errorf("split amounts sum to %s but transaction total is %s", s.Sum().String(), total.String())
	}
	return nil
}
