package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IdempotencyRepository is the pgx-backed implementation of the idempotency
// record store.
type IdempotencyRepository struct {
	BaseRepository
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// FindByKey retrieves the stored record for an idempotency key.
func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT key, request_digest, response_body, response_status, created_at
		FROM idempotency_records
		WHERE key = $1`
	var rec domain.IdempotencyRecord
	err := r.Pool.QueryRow(ctx, query, key).
		Scan(&rec.Key, &rec.RequestDigest, &rec.ResponseBody, &rec.ResponseStatus, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("idempotency key %s not found", key))
		}
		return nil, fmt.Errorf("failed to find idempotency record: %w", err)
	}
	return &rec, nil
}

// SaveRecord persists a record. The key is the primary key, so a concurrent
// writer that got there first surfaces as ErrDuplicate and the stored record
// stays untouched.
func (r *IdempotencyRepository) SaveRecord(ctx context.Context, record domain.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_records (key, request_digest, response_body, response_status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.Pool.Exec(ctx, query,
		record.Key, record.RequestDigest, record.ResponseBody, record.ResponseStatus, record.CreatedAt)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save idempotency record: %w", err)
	}
	return nil
}
