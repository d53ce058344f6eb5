package dto

import (
	"time"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one debit or credit line of a transaction request.
type CreateEntryRequest struct {
	AccountID string           `json:"account_id" binding:"required,uuid"`
	Amount    decimal.Decimal  `json:"amount" binding:"required,dgt0"`
	Type      domain.EntryType `json:"type" binding:"required,oneof=DEBIT CREDIT"`
}

// CreateTransactionRequest defines the payload for recording a transaction.
// The entry set must balance; that is enforced by the ledger engine, not by
// binding.
type CreateTransactionRequest struct {
	Description string               `json:"description" binding:"max=255"`
	Reference   string               `json:"reference" binding:"max=255"`
	Entries     []CreateEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionResponse defines the data returned for a posted transaction.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Posted      bool            `json:"posted"`
	Entries     []EntryResponse `json:"entries"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(txn.Entries))
	for i, e := range txn.Entries {
		entries[i] = EntryResponse{
			ID:        e.EntryID,
			AccountID: e.AccountID,
			Amount:    e.Amount,
			Type:      string(e.EntryType),
			CreatedAt: e.CreatedAt,
		}
	}
	return TransactionResponse{
		ID:          txn.TransactionID,
		Reference:   txn.Reference,
		Description: txn.Description,
		CreatedAt:   txn.CreatedAt,
		Posted:      txn.Posted,
		Entries:     entries,
	}
}
