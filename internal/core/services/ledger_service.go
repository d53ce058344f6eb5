package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	portsrepo "github.com/centbook/centbook/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
	"github.com/centbook/centbook/internal/dto"
	"github.com/centbook/centbook/internal/events"
	"github.com/centbook/centbook/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrTransactionUnbalanced = apperrors.ErrUnbalanced
	ErrTransactionMinEntries = errors.New("transaction must have at least two entries")
	ErrAmountNotPositive     = errors.New("entry amount must be positive")
)

// amountPlaces is the fixed-point scale of all monetary amounts.
const amountPlaces = 4

// maxRetries bounds how often a deadlock-aborted posting is retried before
// the failure is surfaced to the caller.
const maxRetries = 3

// ledgerService provides the core transaction recording operations.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	publisher   events.Publisher
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, publisher events.Publisher) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateEntries checks amounts and the balance law before anything is
// written. The storage layer re-verifies the totals inside the transaction.
func (s *ledgerService) validateEntries(entries []dto.CreateEntryRequest) (totalDebits, totalCredits decimal.Decimal, err error) {
	if len(entries) < 2 {
		return decimal.Zero, decimal.Zero, ErrTransactionMinEntries
	}

	totalDebits = decimal.Zero
	totalCredits = decimal.Zero
	for _, entry := range entries {
		amount := entry.Amount.Round(amountPlaces)
		if amount.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: got %s for account %s", ErrAmountNotPositive, entry.Amount.String(), entry.AccountID)
		}
		switch entry.Type {
		case domain.Debit:
			totalDebits = totalDebits.Add(amount)
		case domain.Credit:
			totalCredits = totalCredits.Add(amount)
		default:
			return decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, entry.Type)
		}
	}

	if !totalDebits.Equal(totalCredits) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("total debits %s != total credits %s: %w",
			totalDebits.StringFixed(amountPlaces), totalCredits.StringFixed(amountPlaces), ErrTransactionUnbalanced)
	}
	return totalDebits, totalCredits, nil
}

// CreateTransaction validates and atomically records a balanced transaction.
// A deadlock abort inside the storage layer is retried with the same
// identifiers; the lock-wait timeout is surfaced to the caller as retryable.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totalDebits, _, err := s.validateEntries(req.Entries)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     reference,
		Description:   req.Description,
		Posted:        true,
		CreatedAt:     now,
	}

	entries := make([]domain.JournalEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     e.AccountID,
			Amount:        e.Amount.Round(amountPlaces),
			EntryType:     e.Type,
			CreatedAt:     now,
		}
	}

	for attempt := 1; ; attempt++ {
		err = s.ledgerRepo.SaveTransaction(ctx, txn, entries)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrRetryable) || attempt >= maxRetries {
			return nil, err
		}
		logger.Warn("Transaction posting aborted, retrying",
			slog.String("transaction_id", txn.TransactionID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}
	txn.Entries = entries

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("reference", txn.Reference),
		slog.Int("entry_count", len(entries)))

	// Best-effort event publication; the posting already committed.
	event := events.TransactionPosted{
		TransactionID: txn.TransactionID,
		Reference:     txn.Reference,
		Amount:        totalDebits,
		EntryCount:    len(entries),
		OccurredAt:    now,
	}
	if err := s.publisher.PublishTransactionPosted(ctx, event); err != nil {
		logger.Error("Failed to publish transaction posted event",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
	}

	return &txn, nil
}

// GetTransactionByID retrieves a transaction with its entries. The principal
// must own at least one account the transaction touches; a foreign
// transaction is reported as not found so its existence does not leak.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string, ownerUserID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	for _, entry := range txn.Entries {
		account, err := s.accountRepo.FindAccountByID(ctx, entry.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if account.OwnerUserID != nil && *account.OwnerUserID == ownerUserID {
			return txn, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
}
