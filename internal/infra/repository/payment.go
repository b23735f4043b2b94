package repository

import (
	"context"
	"time"

	"space-booking/internal/domain/payment"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

const insertPayment = `
INSERT INTO payments (id, reservation_id, amount, method, purpose, status, external_ref)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *PaymentRepository) Create(ctx context.Context, db infra.DBTX, p *payment.Payment) error {
	_, err := db.Exec(ctx, insertPayment,
		pgconv.UUIDToPgtype(p.ID()),
		pgconv.UUIDToPgtype(p.ReservationID()),
		p.Amount(),
		p.Method().String(),
		p.Purpose().String(),
		p.Status().String(),
		pgconv.StringPtrToPgtype(p.ExternalRef()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert payment", err)
	}
	return nil
}

const selectPaymentForUpdate = `
SELECT id, reservation_id, amount, method, purpose, status, external_ref, paid_at
FROM payments
WHERE id = $1
FOR UPDATE
`

func (r *PaymentRepository) FindForUpdate(ctx context.Context, db infra.DBTX, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	var (
		payID, reservationID    uuid.UUID
		amount                  decimal.Decimal
		method, purpose, status string
		externalRef             pgtype.Text
		paidAt                  pgtype.Timestamptz
	)
	err := db.QueryRow(ctx, selectPaymentForUpdate, pgconv.UUIDToPgtype(id)).
		Scan(&payID, &reservationID, &amount, &method, &purpose, &status, &externalRef, &paidAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock payment", err)
	}
	return &shared.PaymentSnapshot{
		ID:            payID,
		ReservationID: reservationID,
		Amount:        amount,
		Method:        method,
		Purpose:       purpose,
		Status:        status,
		ExternalRef:   pgconv.StringPtrFromPgtype(externalRef),
		PaidAt:        pgconv.TimePtrFromPgtype(paidAt),
	}, nil
}

const sumCommitted = `
SELECT COALESCE(SUM(amount), 0)
FROM payments
WHERE reservation_id = $1 AND status IN ('pending', 'paid')
`

func (r *PaymentRepository) CommittedTotal(ctx context.Context, db infra.DBTX, reservationID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.QueryRow(ctx, sumCommitted, pgconv.UUIDToPgtype(reservationID)).Scan(&total)
	if err != nil {
		return decimal.Zero, infra.WrapRepoErr("failed to sum committed payments", err)
	}
	return total, nil
}

const sumPaid = `
SELECT COALESCE(SUM(amount), 0)
FROM payments
WHERE reservation_id = $1 AND status = 'paid'
`

func (r *PaymentRepository) PaidTotal(ctx context.Context, db infra.DBTX, reservationID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.QueryRow(ctx, sumPaid, pgconv.UUIDToPgtype(reservationID)).Scan(&total)
	if err != nil {
		return decimal.Zero, infra.WrapRepoErr("failed to sum paid payments", err)
	}
	return total, nil
}

const markPaymentPaid = `
UPDATE payments
SET status = 'paid',
    paid_at = $2,
    external_ref = COALESCE($3, external_ref),
    updated_at = now()
WHERE id = $1
`

func (r *PaymentRepository) MarkPaid(ctx context.Context, db infra.DBTX, id uuid.UUID, externalRef *string, paidAt time.Time) error {
	tag, err := db.Exec(ctx, markPaymentPaid,
		pgconv.UUIDToPgtype(id),
		pgconv.TimeToPgtype(paidAt),
		pgconv.StringPtrToPgtype(externalRef),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark payment paid", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", pgx.ErrNoRows)
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, db infra.DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", pgx.ErrNoRows)
	}
	return nil
}
