package domain

import (
	"github.com/shopspring/decimal"
)

// RawImportRecord is a parser's canonical output for one transaction read
// from an external file, before persistence. Date is already normalized to
// ISO (YYYY-MM-DD) and Amount is signed. Type may be empty when the source
// format does not carry one; it is inferred later from the amount sign or
// set by the user in the preview stage.
type RawImportRecord struct {
	Date        string          `json:"date"` // ISO YYYY-MM-DD
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type,omitempty"`
	Description string          `json:"description"`
	Payee       string          `json:"payee"`
	Memo        string          `json:"memo"`
	Category    string          `json:"category"` // Free text, unmapped

	// Fallback markers set by the normalizers, so the preview stage can
	// surface defaulted values instead of silently passing them through.
	DateDefaulted   bool `json:"dateDefaulted,omitempty"`
	AmountDefaulted bool `json:"amountDefaulted,omitempty"`
}

// ImportBatchStatus tracks the lifecycle of a staged import.
type ImportBatchStatus string

const (
	BatchPreviewed ImportBatchStatus = "PREVIEWED"
	BatchCommitted ImportBatchStatus = "COMMITTED"
)

// ImportBatch groups the staged rows of one uploaded file between the
// preview and commit requests.
type ImportBatch struct {
	BatchID     string            `json:"batchID"` // Primary Key (UUID)
	AccountID   string            `json:"accountID"`
	FileName    string            `json:"fileName"`
	Format      string            `json:"format"`
	SkippedRows int               `json:"skippedRows"` // Malformed rows dropped by the parser
	Status      ImportBatchStatus `json:"status"`
	AuditFields
}

// StagedRow is one previewed import record held in the staging store.
type StagedRow struct {
	RowID     string          `json:"rowID"` // Primary Key (UUID)
	BatchID   string          `json:"batchID"`
	RowOrder  int             `json:"rowOrder"`
	Record    RawImportRecord `json:"record"`
	Duplicate bool            `json:"duplicate"` // Advisory flag from the duplicate detector
}
