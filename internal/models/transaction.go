package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a business-level transaction row. The nullable
// reference columns are pointers so missing links round-trip as SQL NULL.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Date          time.Time       `db:"date"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Notes         string          `db:"notes"`
	ReferenceNo   string          `db:"reference_no"`
	CategoryID    *string         `db:"category_id"`
	AccountID     *string         `db:"account_id"`
	ToAccountID   *string         `db:"to_account_id"`
	VendorID      *string         `db:"vendor_id"`
	AuditFields
}
