package repository

import (
	"context"
	"time"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// tryInsertKey claims the key, reclaiming it when a previous claim expired
// without completing.
const tryInsertKey = `
INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, 'processing', $4)
ON CONFLICT (key) DO UPDATE
SET endpoint       = EXCLUDED.endpoint,
    request_hash   = EXCLUDED.request_hash,
    status         = 'processing',
    reservation_id = NULL,
    expires_at     = EXCLUDED.expires_at
WHERE idempotency_keys.expires_at < now()
`

func (r *IdempotencyRepository) TryInsert(ctx context.Context, db infra.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := db.Exec(ctx, tryInsertKey,
		pgconv.UUIDToPgtype(key),
		endpoint,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

const selectKey = `
SELECT key, endpoint, request_hash, status, reservation_id, expires_at
FROM idempotency_keys
WHERE key = $1
`

func (r *IdempotencyRepository) Get(ctx context.Context, db infra.DBTX, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		recordKey             uuid.UUID
		endpoint, requestHash string
		status                string
		reservationID         pgtype.UUID
		expiresAt             pgtype.Timestamptz
	)
	err := db.QueryRow(ctx, selectKey, pgconv.UUIDToPgtype(key)).
		Scan(&recordKey, &endpoint, &requestHash, &status, &reservationID, &expiresAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read idempotency key", err)
	}
	return &shared.IdempotencyRecord{
		Key:           recordKey,
		Endpoint:      endpoint,
		RequestHash:   requestHash,
		Status:        status,
		ReservationID: pgconv.UUIDPtrFromPgtype(reservationID),
		ExpiresAt:     pgconv.TimeFromPgtype(expiresAt),
	}, nil
}

const completeKey = `
UPDATE idempotency_keys
SET status = 'completed', reservation_id = $2
WHERE key = $1
`

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, db infra.DBTX, key uuid.UUID, reservationID uuid.UUID) error {
	_, err := db.Exec(ctx, completeKey,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(reservationID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}
