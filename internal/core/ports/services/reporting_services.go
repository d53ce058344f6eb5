package services

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/centbook/centbook/internal/utils/pagination"
)

// ReportingSvcFacade is the public surface of the reporting engine. All
// operations are lock-free reads over the same store the ledger engine writes.
type ReportingSvcFacade interface {
	// TrialBalance aggregates debit/credit totals for every account owned by
	// the principal and verifies the global balance law.
	TrialBalance(ctx context.Context, ownerUserID string) (*domain.TrialBalance, error)

	// AccountStatement returns one page of an account's entries, newest
	// transaction first, along with the total entry count. The account must
	// be owned by the requesting principal.
	AccountStatement(ctx context.Context, accountID string, ownerUserID string, params pagination.Params) ([]domain.StatementLine, int64, error)
}
