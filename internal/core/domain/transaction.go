package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a journal entry is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Transaction represents a single, balanced financial event composed of
// multiple journal entries. Transactions are created already posted; there is
// no draft workflow.
type Transaction struct {
	TransactionID string         `json:"transactionID"` // Primary key (UUID)
	Reference     string         `json:"reference"`     // Unique external reference; generated when omitted
	Description   string         `json:"description"`
	Posted        bool           `json:"posted"`
	CreatedAt     time.Time      `json:"createdAt"`
	Entries       []JournalEntry `json:"entries"`
}

// JournalEntry represents a single debit or credit line within a transaction,
// affecting exactly one account. Entries are immutable once created and are
// exclusively owned by their transaction.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`       // Primary key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (cascade)
	AccountID     string          `json:"accountID"`     // FK -> Account (protected)
	Amount        decimal.Decimal `json:"amount"`        // Strictly positive
	EntryType     EntryType       `json:"entryType"`     // DEBIT or CREDIT
	CreatedAt     time.Time       `json:"createdAt"`
}

// StatementLine is a journal entry joined with its parent transaction, as
// shown on an account statement.
type StatementLine struct {
	EntryID                string          `json:"entryID"`
	Amount                 decimal.Decimal `json:"amount"`
	EntryType              EntryType       `json:"entryType"`
	TransactionDescription string          `json:"transactionDescription"`
	TransactionReference   string          `json:"transactionReference"`
	TransactionDate        time.Time       `json:"transactionDate"`
}
