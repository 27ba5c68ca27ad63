package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
	"github.com/orgbooks-dev/orgbooks/internal/importer"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
)

type importService struct {
	registry   *importer.Registry
	detector   *DuplicateDetector
	batchRepo  portsrepo.ImportBatchRepositoryFacade
	txnReader  portsrepo.TransactionReader
	txnService portssvc.TransactionSvcFacade
	validate   *validator.Validate
}

// NewImportService wires the parser registry, duplicate detector, and the
// staging repository into the two-step preview/commit pipeline.
func NewImportService(registry *importer.Registry, detector *DuplicateDetector, batchRepo portsrepo.ImportBatchRepositoryFacade, txnReader portsrepo.TransactionReader, txnService portssvc.TransactionSvcFacade) portssvc.ImportSvcFacade {
	return &importService{
		registry:   registry,
		detector:   detector,
		batchRepo:  batchRepo,
		txnReader:  txnReader,
		txnService: txnService,
		validate:   validator.New(),
	}
}

func (s *importService) Preview(ctx context.Context, format, fileName string, r io.Reader, accountID, userID string) (*dto.ImportPreviewResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parser, err := s.registry.Get(format)
	if err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), apperrors.ErrValidation)
	}
	result, err := parser.Parse(r)
	if err != nil {
		logger.Warn("import parse failed", "format", format, "fileName", fileName, "error", err)
		return nil, apperrors.NewAppError(400, fmt.Sprintf("failed to parse %s file: %v", parser.Format(), err), apperrors.ErrValidation)
	}

	flags, err := s.flagAgainstLedger(ctx, result.Records)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	batch := domain.ImportBatch{
		BatchID:     uuid.NewString(),
		AccountID:   accountID,
		FileName:    fileName,
		Format:      parser.Format(),
		SkippedRows: result.SkippedRows,
		Status:      domain.BatchPreviewed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	rows := make([]domain.StagedRow, len(result.Records))
	duplicates := 0
	for i, rec := range result.Records {
		rows[i] = domain.StagedRow{
			RowID:     uuid.NewString(),
			BatchID:   batch.BatchID,
			RowOrder:  i + 1,
			Record:    rec,
			Duplicate: flags[i],
		}
		if flags[i] {
			duplicates++
		}
	}

	if err := s.batchRepo.SaveBatch(ctx, batch, rows); err != nil {
		logger.Error("failed to stage import batch", "batchID", batch.BatchID, "error", err)
		return nil, fmt.Errorf("failed to stage import batch: %w", err)
	}
	logger.Info("import batch previewed",
		"batchID", batch.BatchID,
		"format", batch.Format,
		"rows", len(rows),
		"skipped", batch.SkippedRows,
		"duplicates", duplicates)

	resp := &dto.ImportPreviewResponse{
		BatchID:     batch.BatchID,
		AccountID:   batch.AccountID,
		FileName:    batch.FileName,
		Format:      batch.Format,
		SkippedRows: batch.SkippedRows,
		Duplicates:  duplicates,
		Rows:        make([]dto.ImportPreviewRow, len(rows)),
	}
	for i := range rows {
		resp.Rows[i] = dto.ToImportPreviewRow(&rows[i])
	}
	return resp, nil
}

// flagAgainstLedger fetches the existing transactions covering the staged
// records' date span and runs the duplicate detector over them.
func (s *importService) flagAgainstLedger(ctx context.Context, records []domain.RawImportRecord) ([]bool, error) {
	if len(records) == 0 {
		return nil, nil
	}
	from, to, ok := dateSpan(records)
	if !ok {
		return make([]bool, len(records)), nil
	}
	existing, err := s.txnReader.FindInDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load duplicate candidates: %w", err)
	}
	return s.detector.FlagDuplicates(records, existing), nil
}

func dateSpan(records []domain.RawImportRecord) (time.Time, time.Time, bool) {
	var from, to time.Time
	found := false
	for _, rec := range records {
		d, err := time.Parse(normalize.ISODate, rec.Date)
		if err != nil {
			continue
		}
		if !found || d.Before(from) {
			from = d
		}
		if !found || d.After(to) {
			to = d
		}
		found = true
	}
	return from, to, found
}

func (s *importService) Commit(ctx context.Context, req dto.CommitImportRequest, userID string) (*dto.ImportCommitResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batch, err := s.batchRepo.FindBatchByID(ctx, req.BatchID)
	if err != nil {
		return nil, err
	}
	if batch.Status == domain.BatchCommitted {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("batch %q is already committed", batch.BatchID), apperrors.ErrConflict)
	}

	staged, err := s.batchRepo.FindRowsByBatchID(ctx, batch.BatchID)
	if err != nil {
		return nil, err
	}
	byRowID := make(map[string]domain.StagedRow, len(staged))
	for _, row := range staged {
		byRowID[row.RowID] = row
	}

	created, skipped := 0, 0
	for _, rowReq := range req.Rows {
		row, ok := byRowID[rowReq.RowID]
		if !ok {
			return nil, apperrors.NewAppError(400, fmt.Sprintf("row %q does not belong to batch %q", rowReq.RowID, batch.BatchID), apperrors.ErrValidation)
		}
		if rowReq.Skip {
			skipped++
			continue
		}

		createReq, err := s.mergeRow(batch, row, rowReq)
		if err != nil {
			return nil, err
		}
		if _, err := s.txnService.CreateWithPosting(ctx, *createReq, domain.SourceImport, userID); err != nil {
			logger.Error("failed to commit staged row", "batchID", batch.BatchID, "rowID", row.RowID, "error", err)
			return nil, fmt.Errorf("failed to commit row %d: %w", row.RowOrder, err)
		}
		created++
	}

	if err := s.batchRepo.MarkCommitted(ctx, batch.BatchID, userID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to mark batch committed: %w", err)
	}
	logger.Info("import batch committed", "batchID", batch.BatchID, "created", created, "skipped", skipped)
	return &dto.ImportCommitResponse{BatchID: batch.BatchID, Created: created, Skipped: skipped}, nil
}

// mergeRow layers the user's commit edits over the staged record and
// validates the merged result before it is handed to the posting path.
func (s *importService) mergeRow(batch *domain.ImportBatch, row domain.StagedRow, rowReq dto.CommitImportRow) (*dto.CreateTransactionRequest, error) {
	date := row.Record.Date
	if rowReq.Date != "" {
		date = rowReq.Date
	}
	amount := row.Record.Amount
	if rowReq.Amount != nil {
		amount = *rowReq.Amount
	}
	txnType := string(row.Record.Type)
	if rowReq.Type != "" {
		txnType = rowReq.Type
	}
	if txnType == "" {
		txnType = string(importer.InferType(amount))
	}
	description := row.Record.Description
	if rowReq.Description != "" {
		description = rowReq.Description
	}

	merged := dto.CommittedRecord{Date: date, Type: txnType, Description: description}
	if err := s.validate.Struct(merged); err != nil {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("row %d is not committable: %v", row.RowOrder, err), apperrors.ErrValidation)
	}

	accountID := batch.AccountID
	req := &dto.CreateTransactionRequest{
		Date:        date,
		Type:        txnType,
		Amount:      amount.Abs(),
		Description: description,
		Notes:       row.Record.Memo,
		CategoryID:  rowReq.CategoryID,
		AccountID:   &accountID,
		Splits:      rowReq.Splits,
	}
	if req.Amount.Equal(decimal.Zero) {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("row %d has a zero amount", row.RowOrder), apperrors.ErrValidation)
	}
	return req, nil
}
