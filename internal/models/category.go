package models

// Category represents a spending/income category row.
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	Type       string `db:"type"` // INCOME or EXPENSE
	IsActive   bool   `db:"is_active"`
	AuditFields
}
