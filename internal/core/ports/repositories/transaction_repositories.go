package repositories

import (
	"context"
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
)

// TransactionFilter narrows FindAll results. Nil/zero fields are ignored.
type TransactionFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Type       *domain.TransactionType
	CategoryID *string
	AccountID  *string
	VendorID   *string
	Search     string // Substring match across description and notes
	Limit      int
	Offset     int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindAll retrieves transactions matching the filter, newest first.
	FindAll(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	// FindByID retrieves a single transaction by its unique identifier.
	FindByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindInDateRange retrieves all transactions whose date falls in
	// [from, to], used by the duplicate detector's candidate fetch.
	FindInDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// Create persists a new transaction.
	Create(ctx context.Context, txn domain.Transaction) error

	// Update replaces the mutable fields of an existing transaction.
	Update(ctx context.Context, txn domain.Transaction) error

	// Delete removes a transaction row.
	Delete(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
