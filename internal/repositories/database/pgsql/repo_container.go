package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
)

// NewRepositoryProvider probes the ledger schema once and wires the matching
// posting store. JournalRepo stays nil for the category-ledger shape.
func NewRepositoryProvider(ctx context.Context, dbPool *pgxpool.Pool) (portsrepo.RepositoryProvider, error) {
	shape, err := ProbeLedgerShape(ctx, dbPool)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}

	provider := portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		ImportBatchRepo: newPgxImportBatchRepository(dbPool),
	}

	switch shape {
	case portsrepo.ShapeJournal:
		store := newPgxJournalStore(dbPool)
		provider.PostingStore = store
		provider.JournalRepo = store
	case portsrepo.ShapeCategoryLedger:
		provider.PostingStore = newPgxCategoryLedgerStore(dbPool)
	}

	hasMapTable, err := HasCategoryMapTable(ctx, dbPool)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	if hasMapTable {
		provider.CategoryMapRepo = newPgxCategoryMapRepository(dbPool)
	}
	return provider, nil
}
