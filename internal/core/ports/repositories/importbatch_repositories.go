package repositories

import (
	"context"
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
)

// ImportBatchRepositoryFacade persists staged import rows between the
// preview and commit requests.
type ImportBatchRepositoryFacade interface {
	// SaveBatch persists a batch header and its staged rows atomically.
	SaveBatch(ctx context.Context, batch domain.ImportBatch, rows []domain.StagedRow) error

	// FindBatchByID retrieves a batch header.
	FindBatchByID(ctx context.Context, batchID string) (*domain.ImportBatch, error)

	// FindRowsByBatchID retrieves the staged rows of a batch in row order.
	FindRowsByBatchID(ctx context.Context, batchID string) ([]domain.StagedRow, error)

	// MarkCommitted flips a batch to committed.
	MarkCommitted(ctx context.Context, batchID string, updatedBy string, at time.Time) error
}
