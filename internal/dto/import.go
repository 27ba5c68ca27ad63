package dto

import (
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImportPreviewRow is one staged record shown to the user before commit.
type ImportPreviewRow struct {
	RowID           string          `json:"rowID"`
	RowOrder        int             `json:"rowOrder"`
	Date            string          `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type,omitempty"`
	Description     string          `json:"description"`
	Payee           string          `json:"payee,omitempty"`
	Memo            string          `json:"memo,omitempty"`
	Category        string          `json:"category,omitempty"`
	DateDefaulted   bool            `json:"dateDefaulted,omitempty"`
	AmountDefaulted bool            `json:"amountDefaulted,omitempty"`
	Duplicate       bool            `json:"duplicate"`
}

// ImportPreviewResponse is the result of the parse/normalize/duplicate-check
// preview stage.
type ImportPreviewResponse struct {
	BatchID     string             `json:"batchID"`
	AccountID   string             `json:"accountID"`
	FileName    string             `json:"fileName"`
	Format      string             `json:"format"`
	SkippedRows int                `json:"skippedRows"` // Malformed rows the parser dropped
	Duplicates  int                `json:"duplicates"`
	Rows        []ImportPreviewRow `json:"rows"`
}

// CommitImportRow carries the user's decision and edits for one staged row.
// Empty override fields fall back to the staged values.
type CommitImportRow struct {
	RowID       string           `json:"rowID" binding:"required"`
	Skip        bool             `json:"skip"`
	Date        string           `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	CategoryID  *string          `json:"categoryID"`
	Splits      []SplitRequest   `json:"splits" binding:"omitempty,dive"`
}

// CommitImportRequest commits a previewed batch.
type CommitImportRequest struct {
	BatchID string            `json:"batchID" binding:"required"`
	Rows    []CommitImportRow `json:"rows" binding:"required,dive"`
}

// CommittedRecord is the merged staged+override row validated before
// posting. The validate tags are enforced with go-playground/validator.
type CommittedRecord struct {
	Date        string `validate:"required,datetime=2006-01-02"`
	Type        string `validate:"required,oneof=INCOME EXPENSE TRANSFER ASSET"`
	Description string `validate:"required"`
}

// ImportCommitResponse reports the outcome of a commit.
type ImportCommitResponse struct {
	BatchID string `json:"batchID"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// ToImportPreviewRow converts a staged row to its preview DTO.
func ToImportPreviewRow(row *domain.StagedRow) ImportPreviewRow {
	return ImportPreviewRow{
		RowID:           row.RowID,
		RowOrder:        row.RowOrder,
		Date:            row.Record.Date,
		Amount:          row.Record.Amount,
		Type:            string(row.Record.Type),
		Description:     row.Record.Description,
		Payee:           row.Record.Payee,
		Memo:            row.Record.Memo,
		Category:        row.Record.Category,
		DateDefaulted:   row.Record.DateDefaulted,
		AmountDefaulted: row.Record.AmountDefaulted,
		Duplicate:       row.Duplicate,
	}
}
