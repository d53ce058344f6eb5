package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, account_type, currency_code, owner_user_id, balance, created_at`

// AccountRepository is the pgx-backed implementation of the account store.
type AccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.AccountID, &a.Name, &a.AccountType, &a.CurrencyCode, &a.OwnerUserID, &a.Balance, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAccount persists a new account row.
func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, name, account_type, currency_code, owner_user_id, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.Name, account.AccountType, account.CurrencyCode,
		account.OwnerUserID, account.Balance, account.CreatedAt)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return apperrors.NewAppError(409, "account already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// FindAccountByID retrieves a single account without taking any lock.
func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccountsByOwner retrieves all accounts owned by a principal, ordered by name.
func (r *AccountRepository) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_user_id = $1 ORDER BY name`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for owner %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account. The journal_entries foreign key is
// RESTRICT, so an account with postings cannot be deleted; that surfaces as
// ErrConflict.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrConflict) {
			return apperrors.NewAppError(409, "account has journal entries and cannot be deleted", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}

// RecomputeBalance rewrites the denormalized balance from the signed sum of
// the account's journal entries, holding the account's row lock so concurrent
// postings serialize against the rewrite.
func (r *AccountRepository) RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	account, err := r.FindAccountForUpdate(ctx, tx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN entry_type = 'DEBIT' AND $2 THEN amount
				WHEN entry_type = 'CREDIT' AND NOT $2 THEN amount
				ELSE -amount
			END
		), 0)
		FROM journal_entries
		WHERE account_id = $1`
	debitPositive := account.AccountType == domain.Asset || account.AccountType == domain.Expense

	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, query, accountID, debitPositive).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate entries for account %s: %w", accountID, err)
	}

	if err := r.UpdateAccountBalanceInTx(ctx, tx, accountID, balance); err != nil {
		return decimal.Zero, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// FindAccountForUpdate selects one account and acquires an exclusive row lock
// on it for the duration of the enclosing transaction.
func (r *AccountRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE`
	account, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, translatePgError(err)
	}
	return account, nil
}

// UpdateAccountBalanceInTx persists a new balance for an already-locked
// account within the given transaction.
func (r *AccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal) error {
	tag, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE account_id = $2`, balance, accountID)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}
