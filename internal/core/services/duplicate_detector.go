package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
)

// DuplicateDetector flags staged import records that already exist in the
// ledger. A record matches an existing transaction when the normalized date,
// the absolute amount, and the case-insensitive trimmed description all agree.
type DuplicateDetector struct{}

func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{}
}

// FlagDuplicates returns one flag per staged record, in order. Existing
// transactions are indexed once, so repeated staged rows that hit the same
// ledger entry are each flagged.
func (d *DuplicateDetector) FlagDuplicates(staged []domain.RawImportRecord, existing []domain.Transaction) []bool {
	index := make(map[string]struct{}, len(existing))
	for _, txn := range existing {
		index[duplicateKey(txn.Date.Format(normalize.ISODate), txn.Amount, txn.Description)] = struct{}{}
	}

	flags := make([]bool, len(staged))
	for i, rec := range staged {
		_, dup := index[duplicateKey(rec.Date, rec.Amount, rec.Description)]
		flags[i] = dup
	}
	return flags
}

func duplicateKey(date string, amount decimal.Decimal, description string) string {
	return date + "|" + amount.Abs().StringFixed(2) + "|" + strings.ToLower(strings.TrimSpace(description))
}
