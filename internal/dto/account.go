package dto

import (
	"time"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating a ledger account.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required,max=255"`
	AccountType  domain.AccountType `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode string             `json:"currency" binding:"required,len=3"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.AccountID,
		Name:      a.Name,
		Type:      string(a.AccountType),
		Currency:  a.CurrencyCode,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// RecomputeBalanceResponse reports the result of the balance repair operation.
type RecomputeBalanceResponse struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}
