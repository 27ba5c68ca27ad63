package dto

import (
	"time"

	"github.com/orgbooks-dev/orgbooks/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a ledger account.
type CreateAccountRequest struct {
	Code            string `json:"code" binding:"required"`
	Name            string `json:"name" binding:"required"`
	AccountType     string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID string `json:"parentAccountID"`
	Description     string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string    `json:"accountID"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	AccountType     string    `json:"accountType"`
	ParentAccountID string    `json:"parentAccountID,omitempty"`
	Description     string    `json:"description,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(&a)
	}
	return responses
}
