package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	portsrepo "github.com/centbook/centbook/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
	"github.com/centbook/centbook/internal/dto"
	"github.com/centbook/centbook/internal/middleware"
	"github.com/shopspring/decimal"
)

// accountService provides account management operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account with a zero opening balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerUserID string) (*domain.Account, error) {
	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	owner := ownerUserID
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		AccountType:  req.AccountType,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		OwnerUserID:  &owner,
		Balance:      decimal.Zero,
		CreatedAt:    time.Now(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves an account by its identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves all accounts owned by the given principal.
func (s *accountService) ListAccounts(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByOwner(ctx, ownerUserID)
}

// requireOwnership loads the account and verifies the principal owns it.
// A foreign account is reported as not found rather than forbidden, so the
// existence of other principals' accounts does not leak.
func (s *accountService) requireOwnership(ctx context.Context, accountID, ownerUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.OwnerUserID == nil || *account.OwnerUserID != ownerUserID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return account, nil
}

// DeleteAccount removes an account owned by the principal. Accounts with
// journal entries cannot be deleted.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, ownerUserID string) error {
	if _, err := s.requireOwnership(ctx, accountID, ownerUserID); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// RecomputeBalance repairs the denormalized balance from the account's
// journal entries and returns the recomputed value.
func (s *accountService) RecomputeBalance(ctx context.Context, accountID string, ownerUserID string) (decimal.Decimal, error) {
	if _, err := s.requireOwnership(ctx, accountID, ownerUserID); err != nil {
		return decimal.Zero, err
	}
	balance, err := s.accountRepo.RecomputeBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Account balance recomputed",
		slog.String("account_id", accountID),
		slog.String("balance", balance.String()))
	return balance, nil
}
