package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted JournalStatus = "POSTED"
)

// Journal sources identify what produced a journal, for traceability back to
// the originating transaction or import row.
const (
	SourceManual = "manual"
	SourceImport = "import"
	SourceAPI    = "api"
)

// Journal represents a single, balanced double-entry posting event composed
// of journal lines.
type Journal struct {
	JournalID     string        `json:"journalID"`   // Primary Key (UUID)
	JournalDate   time.Time     `json:"journalDate"` // Date the event occurred
	Memo          string        `json:"memo"`        // Nullable user description
	Source        string        `json:"source"`      // manual, import or api
	SourceSystem  string        `json:"sourceSystem"`
	TransactionID *string       `json:"transactionID"` // Originating transaction, if any
	Status        JournalStatus `json:"status"`        // Default: Posted
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalLine is one account-level debit or credit within a journal.
// Exactly one of Debit/Credit is non-zero per line by convention.
type JournalLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	JournalID   string          `json:"journalID"` // FK -> Journal.journalID (Not Null)
	AccountID   string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	CategoryID  *string         `json:"categoryID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`     // >= 0
	Credit      decimal.Decimal `json:"credit"`    // >= 0
	LineOrder   int             `json:"lineOrder"` // Unique within a journal; display and tie-break order
	AuditFields
}
