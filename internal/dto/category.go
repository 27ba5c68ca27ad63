package dto

import (
	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
)

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	IsActive   bool   `json:"isActive"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       string(c.Type),
		IsActive:   c.IsActive,
	}
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(&c)
	}
	return responses
}

// SaveCategoryMapRequest replaces entries of the category to offset-account
// map; keys are category ids, values are account ids.
type SaveCategoryMapRequest struct {
	Mappings map[string]string `json:"mappings" binding:"required"`
}
