package services

import (
	"context"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
	"github.com/orgbooks-dev/orgbooks/internal/dto"
)

// AccountSvcFacade manages the chart of accounts.
type AccountSvcFacade interface {
	// CreateAccount persists a new ledger account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts, optionally restricted to active ones.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// CategorySvcFacade manages categories.
type CategorySvcFacade interface {
	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)

	// GetCategoryByID retrieves a single category.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves categories, optionally restricted to active ones.
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
}

// CategoryMapSvcFacade manages the category to offset-account map used to
// pre-fill posting targets for imported splits.
type CategoryMapSvcFacade interface {
	// GetMap retrieves the whole mapping.
	GetMap(ctx context.Context) (map[string]string, error)

	// SaveMap writes entries into the mapping, last write wins.
	SaveMap(ctx context.Context, mappings map[string]string) error

	// OffsetAccountFor resolves the default offset account for a category.
	// Missing entries yield apperrors.ErrNotFound.
	OffsetAccountFor(ctx context.Context, categoryID string) (string, error)
}
