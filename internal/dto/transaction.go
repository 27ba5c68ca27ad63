package dto

import (
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SplitRequest is one split line of a transaction payload.
type SplitRequest struct {
	CategoryID      string          `json:"categoryID" binding:"required"`
	OffsetAccountID *string         `json:"offsetAccountID"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Notes           string          `json:"notes"`
}

// CreateTransactionRequest is the payload for creating a transaction. Dates
// are ISO strings; the type enum matches the posting engine's supported set.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER ASSET"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Notes       string          `json:"notes"`
	ReferenceNo string          `json:"referenceNo"`
	CategoryID  *string         `json:"categoryID"`
	AccountID   *string         `json:"accountID"`
	ToAccountID *string         `json:"toAccountID"`
	VendorID    *string         `json:"vendorID"`
	Splits      []SplitRequest  `json:"splits" binding:"omitempty,dive"`
}

// UpdateTransactionRequest fully replaces a transaction's fields.
type UpdateTransactionRequest = CreateTransactionRequest

// ListTransactionsParams are the query parameters for listing transactions.
type ListTransactionsParams struct {
	DateFrom   string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Type       string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER ASSET"`
	CategoryID string `form:"categoryID"`
	AccountID  string `form:"accountID"`
	VendorID   string `form:"vendorID"`
	Search     string `form:"search"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes,omitempty"`
	ReferenceNo   string          `json:"referenceNo,omitempty"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	AccountID     *string         `json:"accountID,omitempty"`
	ToAccountID   *string         `json:"toAccountID,omitempty"`
	VendorID      *string         `json:"vendorID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date.Format("2006-01-02"),
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		Description:   txn.Description,
		Notes:         txn.Notes,
		ReferenceNo:   txn.ReferenceNo,
		CategoryID:    txn.CategoryID,
		AccountID:     txn.AccountID,
		ToAccountID:   txn.ToAccountID,
		VendorID:      txn.VendorID,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToDomainSplits converts split requests into a domain split set.
func ToDomainSplits(reqs []SplitRequest) domain.SplitSet {
	if len(reqs) == 0 {
		return nil
	}
	splits := make(domain.SplitSet, len(reqs))
	for i, r := range reqs {
		splits[i] = domain.Split{
			CategoryID:      r.CategoryID,
			OffsetAccountID: r.OffsetAccountID,
			Amount:          r.Amount,
			Notes:           r.Notes,
		}
	}
	return splits
}
