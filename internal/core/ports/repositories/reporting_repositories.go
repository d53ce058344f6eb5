package repositories

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
)

// ReportingRepositoryFacade defines the read-only aggregation queries behind
// the reporting engine. These queries take no locks and tolerate being
// slightly stale relative to in-flight transactions.
type ReportingRepositoryFacade interface {
	// GetTrialBalanceRows aggregates debit and credit totals per account for
	// every account owned by the principal.
	GetTrialBalanceRows(ctx context.Context, ownerUserID string) ([]domain.TrialBalanceRow, error)

	// CountStatementLines returns the number of journal entries against an
	// account.
	CountStatementLines(ctx context.Context, accountID string) (int64, error)

	// ListStatementLines retrieves one page of an account's entries joined
	// with their parent transactions, ordered by transaction creation time
	// descending.
	ListStatementLines(ctx context.Context, accountID string, limit, offset int) ([]domain.StatementLine, error)
}
