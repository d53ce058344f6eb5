package repositories

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByOwner retrieves all accounts owned by the given principal,
	// ordered by name.
	ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. It returns ErrConflict while journal
	// entries still reference the account.
	DeleteAccount(ctx context.Context, accountID string) error

	// RecomputeBalance rewrites the denormalized balance from the signed
	// aggregation of the account's journal entries, under the account's row
	// lock, and returns the recomputed value.
	RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountLockSupport defines the engine-facing operations that run inside an
// open storage transaction.
type AccountLockSupport interface {
	// FindAccountForUpdate selects one account and acquires an exclusive,
	// transaction-scoped row lock on it.
	FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx persists a new balance for a locked account
	// within the given transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLockSupport
}
