package repository

import (
	"context"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const insertReservation = `
INSERT INTO reservations (
	id, space_id, branch_id, customer_id,
	check_in_date, check_out_date, start_time, end_time,
	period, occupancy, status, total_amount, deposit_percent, notes
) VALUES (
	$1, $2, $3, $4,
	$5, $6, $7, $8,
	tstzrange($9, $10, '[)'), $11, $12, $13, $14, NULLIF($15, '')
)
`

func (r *ReservationRepository) Create(ctx context.Context, db infra.DBTX, res *reservation.Reservation) error {
	span := res.Span()
	_, err := db.Exec(ctx, insertReservation,
		pgconv.UUIDToPgtype(res.ID()),
		pgconv.UUIDToPgtype(res.SpaceID()),
		pgconv.UUIDToPgtype(res.BranchID()),
		pgconv.UUIDToPgtype(res.CustomerID()),
		pgconv.DateToPgtype(span.CheckIn()),
		pgconv.DateToPgtype(span.CheckOut()),
		pgconv.PgTimeFromDuration(span.StartTime()),
		pgconv.PgTimeFromDuration(span.EndTime()),
		pgconv.TimeToPgtype(span.StartAt()),
		pgconv.TimeToPgtype(span.EndAt()),
		res.Occupancy(),
		res.Status().String(),
		res.TotalAmount(),
		res.DepositPercent(),
		res.Notes().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

// LockSpace takes a transaction-scoped advisory lock keyed by the space id.
// Every booking of the same space funnels through it, making the overlap
// check and the insert atomic without blocking other spaces.
func (r *ReservationRepository) LockSpace(ctx context.Context, db infra.DBTX, spaceID uuid.UUID) error {
	_, err := db.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`,
		pgconv.UUIDToPgtype(spaceID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to lock space", err)
	}
	return nil
}

const overlapExists = `
SELECT EXISTS (
	SELECT 1
	FROM reservations
	WHERE space_id = $1
	  AND status <> 'cancelled'
	  AND period && tstzrange($2, $3, '[)')
)
`

func (r *ReservationRepository) HasOverlap(ctx context.Context, db infra.DBTX, spaceID uuid.UUID, startAt, endAt time.Time) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, overlapExists,
		pgconv.UUIDToPgtype(spaceID),
		pgconv.TimeToPgtype(startAt),
		pgconv.TimeToPgtype(endAt),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reservation overlap", err)
	}
	return exists, nil
}

const selectReservationForUpdate = `
SELECT id, space_id, branch_id, customer_id, status, total_amount
FROM reservations
WHERE id = $1
FOR UPDATE
`

func (r *ReservationRepository) FindForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		resID, spaceID, branchID, customerID uuid.UUID
		status                               string
		totalAmount                          decimal.Decimal
	)
	err := db.QueryRow(ctx, selectReservationForUpdate, pgconv.UUIDToPgtype(id)).
		Scan(&resID, &spaceID, &branchID, &customerID, &status, &totalAmount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return &shared.ReservationSnapshot{
		ID:          resID,
		SpaceID:     spaceID,
		BranchID:    branchID,
		CustomerID:  customerID,
		Status:      status,
		TotalAmount: totalAmount,
	}, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, db infra.DBTX, id uuid.UUID, status reservation.Status) error {
	tag, err := db.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1`,
		pgconv.UUIDToPgtype(id), status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", pgx.ErrNoRows)
	}
	return nil
}
