package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a ledger account row.
// Note: ParentAccountID uses string for nullable foreign key; empty means root.
type Account struct {
	AccountID       string      `db:"account_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	Description     string      `db:"description"`
	IsActive        bool        `db:"is_active"`
	AuditFields
}
