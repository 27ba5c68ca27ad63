package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	"github.com/orgbooks-dev/orgbooks/internal/models"
	"github.com/orgbooks-dev/orgbooks/internal/utils/mapping"
)

// PgxJournalStore writes the full double-entry schema: journal headers with
// their lines. It also serves journal reads, which only this shape supports.
type PgxJournalStore struct {
	BaseRepository
}

func newPgxJournalStore(pool *pgxpool.Pool) *PgxJournalStore {
	return &PgxJournalStore{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostingStore = (*PgxJournalStore)(nil)
var _ portsrepo.JournalReader = (*PgxJournalStore)(nil)

func (r *PgxJournalStore) Shape() portsrepo.LedgerShape {
	return portsrepo.ShapeJournal
}

// PostJournal inserts the header and all lines in one database transaction.
func (r *PgxJournalStore) PostJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (
			journal_id, journal_date, memo, source, source_system, transaction_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.JournalDate,
		modelJournal.Memo,
		modelJournal.Source,
		modelJournal.SourceSystem,
		modelJournal.TransactionID,
		modelJournal.Status,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (
			line_id, journal_id, account_id, category_id, description, debit, credit, line_order,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.JournalID,
			modelLine.AccountID,
			modelLine.CategoryID,
			modelLine.Description,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.LineOrder,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert journal lines for "+modelJournal.JournalID, err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close journal line batch", err)
	}

	return r.Commit(ctx, tx)
}

// DeletePostingsForTransaction removes the journals posted for a transaction,
// lines first.
func (r *PgxJournalStore) DeletePostingsForTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		DELETE FROM journal_lines
		WHERE journal_id IN (SELECT journal_id FROM journals WHERE transaction_id = $1);
	`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines for transaction "+transactionID, err)
	}
	_, err = tx.Exec(ctx, `DELETE FROM journals WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journals for transaction "+transactionID, err)
	}

	return r.Commit(ctx, tx)
}

const journalSelect = `
	SELECT journal_id, journal_date, memo, source, source_system, transaction_id, status,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM journals
`

func (r *PgxJournalStore) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	var m models.Journal
	err := r.Pool.QueryRow(ctx, journalSelect+`WHERE journal_id = $1`, journalID).Scan(
		&m.JournalID, &m.JournalDate, &m.Memo, &m.Source, &m.SourceSystem, &m.TransactionID, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewAppError(404, fmt.Sprintf("journal %s not found", journalID), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	journal := mapping.ToDomainJournal(m)
	lines, err := r.findLines(ctx, journalID)
	if err != nil {
		return nil, err
	}
	journal.Lines = lines
	return &journal, nil
}

func (r *PgxJournalStore) FindJournalsByTransactionID(ctx context.Context, transactionID string) ([]domain.Journal, error) {
	rows, err := r.Pool.Query(ctx, journalSelect+`WHERE transaction_id = $1 ORDER BY created_at`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		var m models.Journal
		if err := rows.Scan(
			&m.JournalID, &m.JournalDate, &m.Memo, &m.Source, &m.SourceSystem, &m.TransactionID, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading journal rows: %w", err)
	}

	for i := range journals {
		lines, err := r.findLines(ctx, journals[i].JournalID)
		if err != nil {
			return nil, err
		}
		journals[i].Lines = lines
	}
	return journals, nil
}

func (r *PgxJournalStore) findLines(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, journal_id, account_id, category_id, description, debit, credit, line_order,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_order;
	`, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	var ms []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID, &m.JournalID, &m.AccountID, &m.CategoryID, &m.Description, &m.Debit, &m.Credit, &m.LineOrder,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading journal line rows: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}
