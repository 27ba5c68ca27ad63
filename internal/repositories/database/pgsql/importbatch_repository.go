package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	"github.com/orgbooks-dev/orgbooks/internal/models"
	"github.com/orgbooks-dev/orgbooks/internal/utils/mapping"
)

type PgxImportBatchRepository struct {
	BaseRepository
}

func newPgxImportBatchRepository(pool *pgxpool.Pool) portsrepo.ImportBatchRepositoryFacade {
	return &PgxImportBatchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ImportBatchRepositoryFacade = (*PgxImportBatchRepository)(nil)

// SaveBatch persists the header and all staged rows in one transaction.
func (r *PgxImportBatchRepository) SaveBatch(ctx context.Context, batch domain.ImportBatch, rows []domain.StagedRow) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelImportBatch(batch)
	_, err = tx.Exec(ctx, `
		INSERT INTO import_batches (
			batch_id, account_id, file_name, format, skipped_rows, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		m.BatchID, m.AccountID, m.FileName, m.Format, m.SkippedRows, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert import batch "+m.BatchID, err)
	}

	batchInsert := &pgx.Batch{}
	rowQuery := `
		INSERT INTO import_rows (
			row_id, batch_id, row_order, date, amount, type, description, payee, memo, category,
			date_defaulted, amount_defaulted, duplicate
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, row := range rows {
		mr := mapping.ToModelImportRow(row)
		batchInsert.Queue(rowQuery,
			mr.RowID, mr.BatchID, mr.RowOrder, mr.Date, mr.Amount, mr.Type, mr.Description,
			mr.Payee, mr.Memo, mr.Category, mr.DateDefaulted, mr.AmountDefaulted, mr.Duplicate,
		)
	}
	results := tx.SendBatch(ctx, batchInsert)
	for range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return apperrors.NewAppError(500, "failed to insert import rows for batch "+m.BatchID, err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close import row batch", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxImportBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.ImportBatch, error) {
	var m models.ImportBatch
	err := r.Pool.QueryRow(ctx, `
		SELECT batch_id, account_id, file_name, format, skipped_rows, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM import_batches
		WHERE batch_id = $1;
	`, batchID).Scan(
		&m.BatchID, &m.AccountID, &m.FileName, &m.Format, &m.SkippedRows, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(404, fmt.Sprintf("import batch %s not found", batchID), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find import batch %s: %w", batchID, err)
	}
	d := mapping.ToDomainImportBatch(m)
	return &d, nil
}

func (r *PgxImportBatchRepository) FindRowsByBatchID(ctx context.Context, batchID string) ([]domain.StagedRow, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT row_id, batch_id, row_order, date, amount, type, description, payee, memo, category,
		       date_defaulted, amount_defaulted, duplicate
		FROM import_rows
		WHERE batch_id = $1
		ORDER BY row_order;
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query import rows for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	var ms []models.ImportRow
	for rows.Next() {
		var m models.ImportRow
		if err := rows.Scan(
			&m.RowID, &m.BatchID, &m.RowOrder, &m.Date, &m.Amount, &m.Type, &m.Description,
			&m.Payee, &m.Memo, &m.Category, &m.DateDefaulted, &m.AmountDefaulted, &m.Duplicate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading import rows: %w", err)
	}
	return mapping.ToDomainStagedRowSlice(ms), nil
}

func (r *PgxImportBatchRepository) MarkCommitted(ctx context.Context, batchID string, updatedBy string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE import_batches
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE batch_id = $1;
	`, batchID, string(domain.BatchCommitted), at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark batch %s committed: %w", batchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(404, fmt.Sprintf("import batch %s not found", batchID), apperrors.ErrNotFound)
	}
	return nil
}
