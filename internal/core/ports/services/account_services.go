package services

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/centbook/centbook/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade is the public surface of the account store.
type AccountSvcFacade interface {
	// CreateAccount persists a new account owned by the given principal.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerUserID string) (*domain.Account, error)

	// GetAccountByID retrieves an account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the accounts owned by the given principal.
	ListAccounts(ctx context.Context, ownerUserID string) ([]domain.Account, error)

	// DeleteAccount removes an account; deletion is rejected with ErrConflict
	// while journal entries reference it.
	DeleteAccount(ctx context.Context, accountID string, ownerUserID string) error

	// RecomputeBalance repairs the denormalized balance by re-aggregating the
	// account's journal entries, returning the recomputed value.
	RecomputeBalance(ctx context.Context, accountID string, ownerUserID string) (decimal.Decimal, error)
}
