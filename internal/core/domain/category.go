package domain

// Category is a user-facing spending/income category. Splits and the
// category to offset-account map key on category ids.
type Category struct {
	CategoryID string          `json:"categoryID"` // Primary Key (UUID)
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"` // INCOME or EXPENSE
	IsActive   bool            `json:"isActive"`
	AuditFields
}
