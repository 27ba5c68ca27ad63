package services

import (
	"context"
	"io"

	"github.com/orgbooks-dev/orgbooks/internal/dto"
)

// ImportSvcFacade runs the file import pipeline: parse, normalize, flag
// duplicates for preview, then commit accepted rows as posted transactions.
type ImportSvcFacade interface {
	// Preview parses an uploaded file, flags likely duplicates against the
	// existing ledger, and stages the rows under a new batch.
	Preview(ctx context.Context, format, fileName string, r io.Reader, accountID, userID string) (*dto.ImportPreviewResponse, error)

	// Commit converts the accepted rows of a previewed batch into posted
	// transactions. Rows marked skip (or left flagged duplicate by the
	// user) are not imported.
	Commit(ctx context.Context, req dto.CommitImportRequest, userID string) (*dto.ImportCommitResponse, error)
}
