package repositories

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
)

// LedgerWriter defines the atomic write operation of the ledger engine.
type LedgerWriter interface {
	// SaveTransaction persists the transaction and its journal entries and
	// applies the balance updates in a single all-or-nothing unit of work:
	// the account referenced by each entry is locked in entry order, the
	// entry row is inserted, and the locked balance is updated per the sign
	// rule. The unit aborts with no partial state on a missing account
	// (ErrNotFound), a duplicate reference (ErrDuplicate), an unbalanced
	// entry set (ErrUnbalanced), or any storage failure. Deadlock aborts and
	// lock-wait timeouts surface as ErrRetryable.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.JournalEntry) error
}

// LedgerReader defines read operations for transaction data.
type LedgerReader interface {
	// FindTransactionByID retrieves a transaction together with its entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// LedgerRepositoryFacade combines the ledger engine's repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
