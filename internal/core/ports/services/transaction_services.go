package services

import (
	"context"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
)

// TransactionSvcFacade is the CRUD boundary for transactions. The
// WithPosting variants compose the base write with the posting engine so a
// transaction and its journal rows land together.
type TransactionSvcFacade interface {
	// CreateWithPosting persists a new transaction and posts it. source tags
	// the resulting journal (manual, import, api).
	CreateWithPosting(ctx context.Context, req dto.CreateTransactionRequest, source, userID string) (*domain.Transaction, error)

	// UpdateWithPosting replaces a transaction's fields and reposts it.
	UpdateWithPosting(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// Delete removes a transaction and its postings.
	Delete(ctx context.Context, transactionID string) error

	// GetByID retrieves a single transaction.
	GetByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// List retrieves transactions matching the filter parameters.
	List(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}
