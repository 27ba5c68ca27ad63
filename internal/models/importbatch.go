package models

import "github.com/shopspring/decimal"

// ImportBatch represents a staged file import header row.
type ImportBatch struct {
	BatchID     string `db:"batch_id"`
	AccountID   string `db:"account_id"`
	FileName    string `db:"file_name"`
	Format      string `db:"format"`
	SkippedRows int    `db:"skipped_rows"`
	Status      string `db:"status"`
	AuditFields
}

// ImportRow represents one staged record of an import batch.
type ImportRow struct {
	RowID           string          `db:"row_id"`
	BatchID         string          `db:"batch_id"`
	RowOrder        int             `db:"row_order"`
	Date            string          `db:"date"`
	Amount          decimal.Decimal `db:"amount"`
	Type            string          `db:"type"`
	Description     string          `db:"description"`
	Payee           string          `db:"payee"`
	Memo            string          `db:"memo"`
	Category        string          `db:"category"`
	DateDefaulted   bool            `db:"date_defaulted"`
	AmountDefaulted bool            `db:"amount_defaulted"`
	Duplicate       bool            `db:"duplicate"`
}
