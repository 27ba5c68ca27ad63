package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
)

// ProbeLedgerShape inspects the connected database once at startup and
// reports which legacy ledger schema it carries. Databases migrated to the
// full double-entry schema have a journals table; older ones only have the
// flat category_postings table.
func ProbeLedgerShape(ctx context.Context, pool *pgxpool.Pool) (portsrepo.LedgerShape, error) {
	hasJournals, err := tableExists(ctx, pool, "journals")
	if err != nil {
		return "", err
	}
	if hasJournals {
		return portsrepo.ShapeJournal, nil
	}
	hasPostings, err := tableExists(ctx, pool, "category_postings")
	if err != nil {
		return "", err
	}
	if hasPostings {
		return portsrepo.ShapeCategoryLedger, nil
	}
	return "", fmt.Errorf("database has neither a journals nor a category_postings table")
}

// HasCategoryMapTable reports whether the category offset map lives in the
// database; when it does not, the JSON file store is used instead.
func HasCategoryMapTable(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	return tableExists(ctx, pool, "category_offset_map")
}

func tableExists(ctx context.Context, pool *pgxpool.Pool, name string) (bool, error) {
	var regclass *string
	if err := pool.QueryRow(ctx, `SELECT to_regclass($1)`, name).Scan(&regclass); err != nil {
		return false, fmt.Errorf("failed to probe for table %s: %w", name, err)
	}
	return regclass != nil, nil
}
