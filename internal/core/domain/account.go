package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a ledger account in the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // User-facing account code, unique within the active schema
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (Self-referencing)
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Deactivated accounts are kept for historical journal references
	AuditFields
}
