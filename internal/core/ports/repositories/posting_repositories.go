package repositories

import (
	"context"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
)

// LedgerShape identifies which legacy ledger schema the database carries.
// It is probed once at startup, not per call.
type LedgerShape string

const (
	// ShapeCategoryLedger is the simple schema: per-transaction posting rows
	// in a category ledger table, no journal headers.
	ShapeCategoryLedger LedgerShape = "category_ledger"
	// ShapeJournal is the full double-entry schema: journal headers with
	// journal lines.
	ShapeJournal LedgerShape = "journal"
)

// PostingStore persists the balanced lines produced by the posting engine.
// The two ledger schema shapes are two implementations of this interface;
// PostJournal must be atomic (all rows or none).
type PostingStore interface {
	// PostJournal persists a journal and its lines in one database
	// transaction. Implementations for the category-ledger shape flatten the
	// lines into posting rows keyed by the originating transaction.
	PostJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error

	// DeletePostingsForTransaction removes all posted rows that trace back
	// to the given transaction, used before reposting an edited transaction.
	DeletePostingsForTransaction(ctx context.Context, transactionID string) error

	// Shape reports which schema shape this store writes.
	Shape() LedgerShape
}

// JournalReader defines read operations for posted journals. Only the
// journal-shaped store supports reads; the category-ledger shape has no
// journal headers to read back.
type JournalReader interface {
	// FindJournalByID retrieves a journal with its lines.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalsByTransactionID retrieves the journals posted for a
	// transaction, lines included.
	FindJournalsByTransactionID(ctx context.Context, transactionID string) ([]domain.Journal, error)
}
