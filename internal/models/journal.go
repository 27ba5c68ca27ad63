package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a journal header row in the full double-entry schema.
type Journal struct {
	JournalID     string    `db:"journal_id"`
	JournalDate   time.Time `db:"journal_date"`
	Memo          string    `db:"memo"`
	Source        string    `db:"source"`
	SourceSystem  string    `db:"source_system"`
	TransactionID *string   `db:"transaction_id"` // Nullable
	Status        string    `db:"status"`
	AuditFields
}

// JournalLine represents a single debit or credit line within a journal.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	JournalID   string          `db:"journal_id"`
	AccountID   string          `db:"account_id"`
	CategoryID  *string         `db:"category_id"` // Nullable
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	LineOrder   int             `db:"line_order"`
	AuditFields
}

// CategoryPosting is one flattened posting row in the simple ledger schema.
// There are no journal headers; each row carries the originating transaction
// and both sides are kept as a signed pair of columns.
type CategoryPosting struct {
	PostingID     string          `db:"posting_id"`
	TransactionID string          `db:"transaction_id"`
	PostingDate   time.Time       `db:"posting_date"`
	AccountID     string          `db:"account_id"`
	CategoryID    *string         `db:"category_id"` // Nullable
	Description   string          `db:"description"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	LineOrder     int             `db:"line_order"`
	AuditFields
}
