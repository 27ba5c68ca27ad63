package services

import (
	"context"
	"fmt"

	"github.com/orgbooks-dev/orgbooks/internal/apperrors"
	portsrepo "github.com/orgbooks-dev/orgbooks/internal/core/ports/repositories"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
)

type categoryMapService struct {
	store       portsrepo.KeyValueStore
	accountRepo portsrepo.AccountReader
}

// NewCategoryMapService manages the category to offset-account map. The
// backing store may be a relational table or a JSON file.
func NewCategoryMapService(store portsrepo.KeyValueStore, accountRepo portsrepo.AccountReader) portssvc.CategoryMapSvcFacade {
	return &categoryMapService{store: store, accountRepo: accountRepo}
}

func (s *categoryMapService) GetMap(ctx context.Context) (map[string]string, error) {
	return s.store.GetAll(ctx)
}

func (s *categoryMapService) SaveMap(ctx context.Context, mappings map[string]string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountIDs := make([]string, 0, len(mappings))
	for _, accountID := range mappings {
		accountIDs = append(accountIDs, accountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to verify mapped accounts: %w", err)
	}
	for categoryID, accountID := range mappings {
		if _, ok := accounts[accountID]; !ok {
			return apperrors.NewAppError(400,
				fmt.Sprintf("mapped account %q for category %q does not exist", accountID, categoryID),
				apperrors.ErrValidation)
		}
	}

	for categoryID, accountID := range mappings {
		if err := s.store.Set(ctx, categoryID, accountID); err != nil {
			logger.Error("failed to save category mapping", "categoryID", categoryID, "error", err)
			return fmt.Errorf("failed to save category mapping: %w", err)
		}
	}
	logger.Info("category offset map updated", "entries", len(mappings))
	return nil
}

func (s *categoryMapService) OffsetAccountFor(ctx context.Context, categoryID string) (string, error) {
	return s.store.Get(ctx, categoryID)
}
