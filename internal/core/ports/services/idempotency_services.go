package services

import (
	"context"

	"github.com/centbook/centbook/internal/core/domain"
)

// IdempotencySvcFacade guards side-effecting operations against duplicated
// client requests. Keys are opaque caller-supplied tokens scoped to one
// logical operation.
type IdempotencySvcFacade interface {
	// Replay looks up a previously recorded response for the key. It returns
	// ErrNotFound for an unseen key, and ErrConflict when the key was seen
	// but the request digest differs from the recorded one.
	Replay(ctx context.Context, key string, requestDigest string) (*domain.IdempotencyRecord, error)

	// Remember records the response produced for the key. Recording is
	// best-effort; callers log the returned error but must not fail the
	// already-succeeded operation because of it.
	Remember(ctx context.Context, key string, requestDigest string, responseBody []byte, responseStatus int) error
}
