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
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	account := &domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if account.ParentAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, account.ParentAccountID); err != nil {
			return nil, err
		}
	}
	if err := s.accountRepo.SaveAccount(ctx, *account); err != nil {
		logger.Error("failed to create account", "code", req.Code, "error", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	logger.Info("account created", "accountID", account.AccountID, "code", account.Code)
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, activeOnly)
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID); err != nil {
		logger.Error("failed to deactivate account", "accountID", accountID, "error", err)
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	logger.Info("account deactivated", "accountID", accountID)
	return nil
}
