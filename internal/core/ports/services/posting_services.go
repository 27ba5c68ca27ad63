package services

import (
	"context"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
)

// PostingSvc is the posting engine: it converts a transaction payload into
// balanced double-entry journal lines and persists them atomically. Every
// path enforces the strict balance check; an unbalanced posting fails with
// no rows persisted.
type PostingSvc interface {
	// PostTransaction posts a transaction, dividing it across splits when
	// provided (split amounts are then the source of truth for the total).
	// source tags the resulting journal for traceability (manual, import, api).
	PostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error)

	// RepostTransaction removes the prior postings of a transaction and
	// posts it again from the updated payload.
	RepostTransaction(ctx context.Context, txn domain.Transaction, splits domain.SplitSet, source, userID string) (*domain.Journal, error)

	// UnpostTransaction removes all postings traced to a transaction.
	UnpostTransaction(ctx context.Context, transactionID string) error
}

// JournalReaderSvc defines read operations for posted journals.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournalsByTransaction retrieves the journals posted for a transaction.
	ListJournalsByTransaction(ctx context.Context, transactionID string) ([]domain.Journal, error)
}

// PostingSvcFacade combines posting and journal read operations.
type PostingSvcFacade interface {
	PostingSvc
	JournalReaderSvc
}
