package services

import (
	"context"
	"fmt"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	portsrepo "github.com/centbook/centbook/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
	"github.com/centbook/centbook/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// reportingService provides read-only reporting over the ledger.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance aggregates debit/credit totals for the principal's accounts.
// IsBalanced reports the global balance law over those accounts; it holds
// whenever every transaction only touches accounts of a single owner.
func (s *reportingService) TrialBalance(ctx context.Context, ownerUserID string) (*domain.TrialBalance, error) {
	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, row := range rows {
		totalDebits = totalDebits.Add(row.TotalDebits)
		totalCredits = totalCredits.Add(row.TotalCredits)
	}

	return &domain.TrialBalance{
		IsBalanced:   totalDebits.Equal(totalCredits),
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		Accounts:     rows,
	}, nil
}

// AccountStatement returns one page of the account's entries plus the total
// entry count. The account must belong to the requesting principal.
func (s *reportingService) AccountStatement(ctx context.Context, accountID string, ownerUserID string, params pagination.Params) ([]domain.StatementLine, int64, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	if account.OwnerUserID == nil || *account.OwnerUserID != ownerUserID {
		return nil, 0, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	count, err := s.reportingRepo.CountStatementLines(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	if err := pagination.ValidatePage(params, count); err != nil {
		return nil, 0, err
	}

	lines, err := s.reportingRepo.ListStatementLines(ctx, accountID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return lines, count, nil
}
