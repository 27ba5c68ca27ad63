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

type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := &domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Type:       domain.TransactionType(req.Type),
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, *category); err != nil {
		logger.Error("failed to create category", "name", req.Name, "error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	logger.Info("category created", "categoryID", category.CategoryID, "name", category.Name)
	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, activeOnly)
}
