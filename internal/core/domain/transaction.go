package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a financial event.
type TransactionType string

const (
	TypeIncome   TransactionType = "INCOME"
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"
	TypeAsset    TransactionType = "ASSET"
)

// ValidTransactionType reports whether t is one of the supported transaction types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer, TypeAsset:
		return true
	}
	return false
}

// Transaction represents a single financial event as entered or imported by a
// user. It is the payload the posting engine converts into balanced journal
// lines; it is not itself a ledger entry.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	Date          time.Time       `json:"date"`          // Calendar date of the event
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`      // Non-negative, 2-decimal currency units
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	ReferenceNo   string          `json:"referenceNo"`
	CategoryID    *string         `json:"categoryID"`    // Optional category reference
	AccountID     *string         `json:"accountID"`     // Optional cash/bank account reference
	ToAccountID   *string         `json:"toAccountID"`   // Transfer destination; must differ from AccountID
	VendorID      *string         `json:"vendorID"`      // Optional counterparty reference
	AuditFields
}
