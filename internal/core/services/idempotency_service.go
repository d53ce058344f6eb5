package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	portsrepo "github.com/centbook/centbook/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
)

// idempotencyService guards side-effecting operations against duplicated
// client requests.
type idempotencyService struct {
	idempotencyRepo portsrepo.IdempotencyRepositoryFacade
}

// NewIdempotencyService creates a new IdempotencyService.
func NewIdempotencyService(idempotencyRepo portsrepo.IdempotencyRepositoryFacade) portssvc.IdempotencySvcFacade {
	return &idempotencyService{idempotencyRepo: idempotencyRepo}
}

var _ portssvc.IdempotencySvcFacade = (*idempotencyService)(nil)

// Replay returns the recorded response for a previously seen key. A key seen
// with a different request body is a client error, not a replay.
func (s *idempotencyService) Replay(ctx context.Context, key string, requestDigest string) (*domain.IdempotencyRecord, error) {
	record, err := s.idempotencyRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if record.RequestDigest != requestDigest {
		return nil, fmt.Errorf("idempotency key %s reused with a different request body: %w", key, apperrors.ErrConflict)
	}
	return record, nil
}

// Remember records the response produced for the key. A concurrent writer
// winning the race is not an error; the stored record stands either way.
func (s *idempotencyService) Remember(ctx context.Context, key string, requestDigest string, responseBody []byte, responseStatus int) error {
	record := domain.IdempotencyRecord{
		Key:            key,
		RequestDigest:  requestDigest,
		ResponseBody:   responseBody,
		ResponseStatus: responseStatus,
		CreatedAt:      time.Now(),
	}
	if err := s.idempotencyRepo.SaveRecord(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return err
	}
	return nil
}
