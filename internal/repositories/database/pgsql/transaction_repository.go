package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	"github.com/orgbooks-dev/orgbooks/internal/models"
	"github.com/orgbooks-dev/orgbooks/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionSelect = `
	SELECT transaction_id, date, type, amount, description, notes, reference_no,
	       category_id, account_id, to_account_id, vendor_id,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM transactions
`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.Date, &m.Type, &m.Amount, &m.Description, &m.Notes, &m.ReferenceNo,
		&m.CategoryID, &m.AccountID, &m.ToAccountID, &m.VendorID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxTransactionRepository) Create(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			transaction_id, date, type, amount, description, notes, reference_no,
			category_id, account_id, to_account_id, vendor_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.Date, m.Type, m.Amount, m.Description, m.Notes, m.ReferenceNo,
		m.CategoryID, m.AccountID, m.ToAccountID, m.VendorID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) Update(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET date = $2, type = $3, amount = $4, description = $5, notes = $6, reference_no = $7,
		    category_id = $8, account_id = $9, to_account_id = $10, vendor_id = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.Date, m.Type, m.Amount, m.Description, m.Notes, m.ReferenceNo,
		m.CategoryID, m.AccountID, m.ToAccountID, m.VendorID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(404, fmt.Sprintf("transaction %s not found", m.TransactionID), apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) Delete(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(404, fmt.Sprintf("transaction %s not found", transactionID), apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) FindByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx, transactionSelect+`WHERE transaction_id = $1`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(404, fmt.Sprintf("transaction %s not found", transactionID), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

// FindAll builds the WHERE clause from the filter's set fields only.
func (r *PgxTransactionRepository) FindAll(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.DateFrom != nil {
		conditions = append(conditions, "date >= "+arg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "date <= "+arg(*filter.DateTo))
	}
	if filter.Type != nil {
		conditions = append(conditions, "type = "+arg(string(*filter.Type)))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = "+arg(*filter.CategoryID))
	}
	if filter.AccountID != nil {
		conditions = append(conditions, "(account_id = "+arg(*filter.AccountID)+" OR to_account_id = "+arg(*filter.AccountID)+")")
	}
	if filter.VendorID != nil {
		conditions = append(conditions, "vendor_id = "+arg(*filter.VendorID))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, "(description ILIKE "+arg(pattern)+" OR notes ILIKE "+arg(pattern)+")")
	}

	query := transactionSelect
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += "ORDER BY date DESC, created_at DESC\n"
	if filter.Limit > 0 {
		query += "LIMIT " + arg(filter.Limit) + "\n"
	}
	if filter.Offset > 0 {
		query += "OFFSET " + arg(filter.Offset)
	}

	return r.queryTransactions(ctx, query, args...)
}

func (r *PgxTransactionRepository) FindInDateRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, transactionSelect+`WHERE date >= $1 AND date <= $2 ORDER BY date`, from, to)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}
