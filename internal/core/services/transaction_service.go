package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
	"github.com/orgbooks-dev/orgbooks/internal/utils/normalize"
)

type transactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
	posting portssvc.PostingSvc
}

// NewTransactionService composes the transaction repository with the posting
// engine so every write keeps the ledger in step with the transaction table.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, posting portssvc.PostingSvc) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, posting: posting}
}

func (s *transactionService) CreateWithPosting(ctx context.Context, req dto.CreateTransactionRequest, source, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, splits, err := fromCreateRequest(req, userID)
	if err != nil {
		return nil, err
	}
	txn.TransactionID = uuid.NewString()

	if err := s.txnRepo.Create(ctx, *txn); err != nil {
		logger.Error("failed to create transaction", "error", err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if _, err := s.posting.PostTransaction(ctx, *txn, splits, source, userID); err != nil {
		// The posting failed, so the bare transaction row must not survive.
		if delErr := s.txnRepo.Delete(ctx, txn.TransactionID); delErr != nil {
			logger.Error("failed to roll back unposted transaction", "transactionID", txn.TransactionID, "error", delErr)
		}
		return nil, err
	}
	logger.Info("transaction created", "transactionID", txn.TransactionID, "type", txn.Type)
	return txn, nil
}

func (s *transactionService) UpdateWithPosting(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	txn, splits, err := fromCreateRequest(req, userID)
	if err != nil {
		return nil, err
	}
	txn.TransactionID = existing.TransactionID
	txn.CreatedAt = existing.CreatedAt
	txn.CreatedBy = existing.CreatedBy

	if err := s.txnRepo.Update(ctx, *txn); err != nil {
		logger.Error("failed to update transaction", "transactionID", transactionID, "error", err)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if _, err := s.posting.RepostTransaction(ctx, *txn, splits, domain.SourceAPI, userID); err != nil {
		return nil, err
	}
	logger.Info("transaction updated", "transactionID", transactionID)
	return txn, nil
}

func (s *transactionService) Delete(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.txnRepo.FindByID(ctx, transactionID); err != nil {
		return err
	}
	if err := s.posting.UnpostTransaction(ctx, transactionID); err != nil {
		return err
	}
	if err := s.txnRepo.Delete(ctx, transactionID); err != nil {
		logger.Error("failed to delete transaction", "transactionID", transactionID, "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	logger.Info("transaction deleted", "transactionID", transactionID)
	return nil
}

func (s *transactionService) GetByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindByID(ctx, transactionID)
}

func (s *transactionService) List(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.DateFrom != "" {
		from, err := time.Parse(normalize.ISODate, params.DateFrom)
		if err == nil {
			filter.DateFrom = &from
		}
	}
	if params.DateTo != "" {
		to, err := time.Parse(normalize.ISODate, params.DateTo)
		if err == nil {
			filter.DateTo = &to
		}
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}
	if params.CategoryID != "" {
		filter.CategoryID = &params.CategoryID
	}
	if params.AccountID != "" {
		filter.AccountID = &params.AccountID
	}
	if params.VendorID != "" {
		filter.VendorID = &params.VendorID
	}
	return s.txnRepo.FindAll(ctx, filter)
}

func fromCreateRequest(req dto.CreateTransactionRequest, userID string) (*domain.Transaction, domain.SplitSet, error) {
	date, err := time.Parse(normalize.ISODate, req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid transaction date %q: %w", req.Date, err)
	}
	now := time.Now()
	txn := &domain.Transaction{
		Date:        date,
		Type:        domain.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Notes:       req.Notes,
		ReferenceNo: req.ReferenceNo,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		VendorID:    req.VendorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	return txn, dto.ToDomainSplits(req.Splits), nil
}
