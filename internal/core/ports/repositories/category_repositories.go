package repositories

import (
	"context"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for categories.
type CategoryRepositoryFacade interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindCategoryByID retrieves a single category.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves categories, optionally restricted to active ones.
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
}
