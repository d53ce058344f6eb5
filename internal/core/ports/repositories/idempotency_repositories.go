package repositories

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
)

// IdempotencyRepositoryFacade stores at-most-once response records keyed by
// caller-supplied idempotency tokens.
type IdempotencyRepositoryFacade interface {
	// FindByKey retrieves the record for a key, or ErrNotFound.
	FindByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error)

	// SaveRecord persists a record. A previously recorded key yields
	// ErrDuplicate; the stored record is never overwritten.
	SaveRecord(ctx context.Context, record domain.IdempotencyRecord) error
}
