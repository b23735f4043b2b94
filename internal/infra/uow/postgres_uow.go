package uow

import (
	"context"
	"math/rand"
	"time"

	"space-booking/internal/infra"
	"space-booking/internal/infra/readstore"
	"space-booking/internal/infra/repository"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxAttempts    = 3
	initialBackoff = 20 * time.Millisecond
)

// Retryable transaction failures.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
)

type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

// Within runs fn inside a transaction, retrying serialization failures and
// deadlocks with jittered backoff. fn must be safe to re-run; all state it
// produces goes through the transaction.
func (u *PostgresUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := initialBackoff << (attempt - 1)
			jitter := time.Duration(rand.Int63n(int64(backoff)))
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return errs.Wrap(ctx.Err(), "transaction cancelled during retry backoff")
			}
		}

		err := u.runInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}
	return errs.Wrap(lastErr, "transaction retries exhausted")
}

func (u *PostgresUnitOfWork) CommandReads() shared.CommandReads {
	return readstore.NewCommandReadStore(u.pool)
}

func (u *PostgresUnitOfWork) runInTx(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	// No-op after a successful commit.
	defer func() { _ = pgxTx.Rollback(ctx) }()

	if err := fn(ctx, newPgTx(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit transaction", err)
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCodeSerializationFailure || pgErr.Code == pgCodeDeadlockDetected
	}
	return false
}

// pgTx bundles the write repositories over one pgx transaction.
type pgTx struct {
	db           pgx.Tx
	reservations *repository.ReservationRepository
	payments     *repository.PaymentRepository
	idempotency  *repository.IdempotencyRepository
	catalog      *repository.CatalogRepository
}

func newPgTx(db pgx.Tx) *pgTx {
	return &pgTx{
		db:           db,
		reservations: repository.NewReservationRepository(),
		payments:     repository.NewPaymentRepository(),
		idempotency:  repository.NewIdempotencyRepository(),
		catalog:      repository.NewCatalogRepository(),
	}
}

func (t *pgTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *pgTx) Payments() shared.PaymentRepository         { return t.payments }
func (t *pgTx) Idempotency() shared.IdempotencyRepository  { return t.idempotency }
func (t *pgTx) Catalog() shared.CatalogRepository          { return t.catalog }
func (t *pgTx) Reads() shared.CommandReads                 { return readstore.NewCommandReadStore(t.db) }
func (t *pgTx) DB() infra.DBTX                             { return t.db }
