package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
)

// PgxCategoryMapRepository keeps the category to offset-account map in the
// category_offset_map table. Set is an upsert, last write wins.
type PgxCategoryMapRepository struct {
	pool *pgxpool.Pool
}

func newPgxCategoryMapRepository(pool *pgxpool.Pool) portsrepo.KeyValueStore {
	return &PgxCategoryMapRepository{pool: pool}
}

var _ portsrepo.KeyValueStore = (*PgxCategoryMapRepository)(nil)

func (r *PgxCategoryMapRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT offset_account_id FROM category_offset_map WHERE category_id = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewAppError(404, fmt.Sprintf("no mapping for category %s", key), apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to look up category mapping %s: %w", key, err)
	}
	return value, nil
}

func (r *PgxCategoryMapRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT category_id, offset_account_id FROM category_offset_map`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category mappings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan category mapping row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading category mapping rows: %w", err)
	}
	return result, nil
}

func (r *PgxCategoryMapRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO category_offset_map (category_id, offset_account_id)
		VALUES ($1, $2)
		ON CONFLICT (category_id) DO UPDATE SET offset_account_id = EXCLUDED.offset_account_id;
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save category mapping %s: %w", key, err)
	}
	return nil
}
