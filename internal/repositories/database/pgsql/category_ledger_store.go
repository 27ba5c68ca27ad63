package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
)

// PgxCategoryLedgerStore writes the older flat schema: one posting row per
// journal line in category_postings, keyed by the originating transaction.
// There are no journal headers, so this store cannot serve journal reads.
type PgxCategoryLedgerStore struct {
	BaseRepository
}

func newPgxCategoryLedgerStore(pool *pgxpool.Pool) *PgxCategoryLedgerStore {
	return &PgxCategoryLedgerStore{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostingStore = (*PgxCategoryLedgerStore)(nil)

func (r *PgxCategoryLedgerStore) Shape() portsrepo.LedgerShape {
	return portsrepo.ShapeCategoryLedger
}

// PostJournal flattens the journal into posting rows. The header's identity
// survives only through the transaction id the rows carry.
func (r *PgxCategoryLedgerStore) PostJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	transactionID := ""
	if journal.TransactionID != nil {
		transactionID = *journal.TransactionID
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO category_postings (
			posting_id, transaction_id, posting_date, account_id, category_id, description,
			debit, credit, line_order,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range lines {
		batch.Queue(query,
			line.LineID,
			transactionID,
			journal.JournalDate,
			line.AccountID,
			line.CategoryID,
			line.Description,
			line.Debit,
			line.Credit,
			line.LineOrder,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert category postings for transaction "+transactionID, err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close category posting batch", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCategoryLedgerStore) DeletePostingsForTransaction(ctx context.Context, transactionID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM category_postings WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete category postings for transaction "+transactionID, err)
	}
	return nil
}
