package shared

import (
	"context"
	"time"

	"space-booking/internal/domain/payment"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfWork runs a function inside a database transaction. The function
// receives a Tx exposing the write repositories; any returned error rolls the
// transaction back. Serialization failures are retried transparently.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	CommandReads() CommandReads
}

// Tx is the per-transaction repository bundle.
type Tx interface {
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Idempotency() IdempotencyRepository
	Catalog() CatalogRepository
	Reads() CommandReads
	DB() infra.DBTX
}

// CommandReads are the reads commands need for their own decisions. Inside
// Within they run on the transaction connection and see its uncommitted
// writes; outside they run on the pool.
type CommandReads interface {
	SpaceByID(ctx context.Context, id uuid.UUID) (*SpaceSnapshot, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*CustomerSnapshot, error)
	BranchExists(ctx context.Context, id uuid.UUID) (bool, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, db infra.DBTX, res *reservation.Reservation) error
	// LockSpace serializes booking attempts per space for the rest of the
	// transaction.
	LockSpace(ctx context.Context, db infra.DBTX, spaceID uuid.UUID) error
	// HasOverlap reports whether any non-cancelled reservation of the space
	// intersects the half-open instant range [startAt, endAt).
	HasOverlap(ctx context.Context, db infra.DBTX, spaceID uuid.UUID, startAt, endAt time.Time) (bool, error)
	// FindForUpdate reads the reservation row with FOR UPDATE so payment
	// registration and reconciliation serialize per reservation.
	FindForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*ReservationSnapshot, error)
	UpdateStatus(ctx context.Context, db infra.DBTX, id uuid.UUID, status reservation.Status) error
}

type PaymentRepository interface {
	Create(ctx context.Context, db infra.DBTX, p *payment.Payment) error
	FindForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*PaymentSnapshot, error)
	// CommittedTotal sums pending and paid payments of the reservation.
	CommittedTotal(ctx context.Context, db infra.DBTX, reservationID uuid.UUID) (decimal.Decimal, error)
	// PaidTotal sums paid payments only; it drives status derivation.
	PaidTotal(ctx context.Context, db infra.DBTX, reservationID uuid.UUID) (decimal.Decimal, error)
	MarkPaid(ctx context.Context, db infra.DBTX, id uuid.UUID, externalRef *string, paidAt time.Time) error
	Delete(ctx context.Context, db infra.DBTX, id uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key. It reports true when this request inserted
	// the record, false when the key already existed.
	TryInsert(ctx context.Context, db infra.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, db infra.DBTX, key uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, db infra.DBTX, key uuid.UUID, reservationID uuid.UUID) error
}

type CatalogRepository interface {
	CreateBranch(ctx context.Context, db infra.DBTX, name string) (uuid.UUID, error)
	CreateSpace(ctx context.Context, db infra.DBTX, params CreateSpaceParams) (uuid.UUID, error)
	CreateCustomer(ctx context.Context, db infra.DBTX, params CreateCustomerParams) (uuid.UUID, error)
}
