package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	"github.com/centbook/centbook/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerRepository is the pgx-backed implementation of the ledger engine's
// storage. It owns the only code path that writes transactions, journal
// entries, and balance updates.
type LedgerRepository struct {
	BaseRepository
	accounts    *AccountRepository
	lockTimeout time.Duration
}

// NewLedgerRepository creates a new LedgerRepository. lockTimeout bounds how
// long a posting waits on a contended account row before aborting.
func NewLedgerRepository(pool *pgxpool.Pool, accounts *AccountRepository, lockTimeout time.Duration) *LedgerRepository {
	return &LedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accounts:       accounts,
		lockTimeout:    lockTimeout,
	}
}

// SaveTransaction persists a transaction and its entries and applies the
// balance updates in one unit of work. For each entry, in the order given,
// the referenced account row is locked, the entry row is inserted, and the
// locked balance is updated by the entry's signed amount. The debit and
// credit totals are verified before commit; any failure rolls the whole unit
// back.
func (r *LedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	// Bound the wait on contended account rows. SET LOCAL scopes the setting
	// to this transaction; lock_timeout does not take a bind parameter.
	setTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, setTimeout); err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}

	insertTxn := `
		INSERT INTO transactions (transaction_id, reference, description, posted, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, insertTxn,
		txn.TransactionID, txn.Reference, txn.Description, txn.Posted, txn.CreatedAt); err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return apperrors.NewAppError(409, fmt.Sprintf("transaction reference %q already exists", txn.Reference), apperrors.ErrDuplicate)
		}
		return translatePgError(err)
	}

	insertEntry := `
		INSERT INTO journal_entries (entry_id, transaction_id, account_id, amount, entry_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, entry := range entries {
		// The lock is acquired per entry, in entry order. Re-selecting an
		// account already locked by this transaction is a no-op and returns
		// the balance as updated by earlier entries.
		account, err := r.accounts.FindAccountForUpdate(ctx, tx, entry.AccountID)
		if err != nil {
			return err
		}

		if entry.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: entry amount %s must be positive", apperrors.ErrValidation, entry.Amount.String())
		}

		if _, err := tx.Exec(ctx, insertEntry,
			entry.EntryID, entry.TransactionID, entry.AccountID,
			entry.Amount, entry.EntryType, entry.CreatedAt); err != nil {
			return translatePgError(err)
		}

		delta, err := accounting.SignedAmount(entry.Amount, entry.EntryType, account.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to sign entry amount", err)
		}
		if err := r.accounts.UpdateAccountBalanceInTx(ctx, tx, entry.AccountID, account.Balance.Add(delta)); err != nil {
			return err
		}

		switch entry.EntryType {
		case domain.Debit:
			totalDebits = totalDebits.Add(entry.Amount)
		case domain.Credit:
			totalCredits = totalCredits.Add(entry.Amount)
		}
	}

	if !totalDebits.Equal(totalCredits) {
		return fmt.Errorf("total debits %s != total credits %s: %w",
			totalDebits.StringFixed(4), totalCredits.StringFixed(4), apperrors.ErrUnbalanced)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction together with its entries,
// entries ordered by creation.
func (r *LedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, reference, description, posted, created_at
		FROM transactions
		WHERE transaction_id = $1`
	var txn domain.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).
		Scan(&txn.TransactionID, &txn.Reference, &txn.Description, &txn.Posted, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	entryQuery := `
		SELECT entry_id, transaction_id, account_id, amount, entry_type, created_at
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY created_at, entry_id`
	rows, err := r.Pool.Query(ctx, entryQuery, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.EntryID, &e.TransactionID, &e.AccountID, &e.Amount, &e.EntryType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		txn.Entries = append(txn.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return &txn, nil
}
