package pgsql

import (
	"time"

	"github.com/centbook/centbook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories into the provider
// consumed by the service constructors.
func NewRepositoryProvider(pool *pgxpool.Pool, lockTimeout time.Duration) *repositories.RepositoryProvider {
	accountRepo := NewAccountRepository(pool)
	return &repositories.RepositoryProvider{
		AccountRepo:     accountRepo,
		LedgerRepo:      NewLedgerRepository(pool, accountRepo, lockTimeout),
		IdempotencyRepo: NewIdempotencyRepository(pool),
		ReportingRepo:   NewReportingRepository(pool),
	}
}
