package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionPosted is emitted after a transaction commits. Amount is the
// transaction's debit total, the economic value moved.
type TransactionPosted struct {
	TransactionID string          `json:"transaction_id"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount"`
	EntryCount    int             `json:"entry_count"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Publisher emits ledger events to downstream consumers. Publishing is
// best-effort: failures are logged by the caller and never roll back the
// committed transaction.
type Publisher interface {
	PublishTransactionPosted(ctx context.Context, event TransactionPosted) error
}

// NoopPublisher discards all events. It stands in when no broker is
// configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionPosted(ctx context.Context, event TransactionPosted) error {
	return nil
}
