package services

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/centbook/centbook/internal/dto"
)

// LedgerSvcFacade is the public surface of the ledger engine.
type LedgerSvcFacade interface {
	// CreateTransaction records a balanced transaction atomically: entries
	// are persisted, referenced accounts are locked in entry order and their
	// balances updated per the sign rule, and the whole unit rolls back on
	// any validation or storage failure.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves a transaction with its entries. The
	// principal must own at least one account the transaction touches;
	// otherwise the transaction is reported as not found so its existence
	// does not leak.
	GetTransactionByID(ctx context.Context, transactionID string, ownerUserID string) (*domain.Transaction, error)
}
