package commands

import (
	"context"
	"time"

	"space-booking/internal/domain/payment"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/queries"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterPaymentInput struct {
	Amount      decimal.Decimal
	Method      string
	Purpose     string
	ExternalRef *string
}

type ConfirmPaymentInput struct {
	ExternalRef *string
	PaidAt      *time.Time
}

type PaymentCommands interface {
	// Register appends a pending payment, bounded by the reservation's
	// remaining balance.
	Register(ctx context.Context, reservationID uuid.UUID, in RegisterPaymentInput) (*queries.PaymentView, error)
	// Confirm marks the payment paid and reconciles the reservation status in
	// the same transaction.
	Confirm(ctx context.Context, paymentID uuid.UUID, in ConfirmPaymentInput) (*queries.PaymentView, error)
	// Remove deletes a payment that is still pending.
	Remove(ctx context.Context, paymentID uuid.UUID) error
}

type paymentCommands struct {
	uow     shared.UnitOfWork
	queries queries.PaymentQueries
	clock   clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, paymentQueries queries.PaymentQueries, clk clock.Clock) PaymentCommands {
	return &paymentCommands{uow: uow, queries: paymentQueries, clock: clk}
}

func (c *paymentCommands) Register(ctx context.Context, reservationID uuid.UUID, in RegisterPaymentInput) (*queries.PaymentView, error) {
	pay, err := payment.NewPayment(
		reservationID,
		in.Amount,
		payment.Method(in.Method),
		payment.Purpose(in.Purpose),
		in.ExternalRef,
	)
	if err != nil {
		if errs.Is(err, payment.ErrInvalidAmount) {
			return nil, errs.Mark(err, errs.ErrInvalidAmount)
		}
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The row lock serializes concurrent registrations per reservation so
		// the committed sum cannot be oversubscribed.
		res, err := c.lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}

		committed, err := tx.Payments().CommittedTotal(ctx, tx.DB(), reservationID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		remaining := payment.Remaining(res.TotalAmount, committed)
		if err := payment.CheckRemaining(pay.Amount(), remaining); err != nil {
			return errs.Mark(err, errs.ErrAmountExceedsRemaining)
		}

		if err := tx.Payments().Create(ctx, tx.DB(), pay); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.queries.GetByID(ctx, pay.ID())
}

func (c *paymentCommands) Confirm(ctx context.Context, paymentID uuid.UUID, in ConfirmPaymentInput) (*queries.PaymentView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pay, err := tx.Payments().FindForUpdate(ctx, tx.DB(), paymentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrPaymentNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		res, err := c.lockReservation(ctx, tx, pay.ReservationID)
		if err != nil {
			return err
		}

		// Re-confirming is idempotent on status but still refreshes the
		// provider reference and paid-at when the caller supplies them; a nil
		// external ref keeps the stored one.
		paidAt := c.clock.Now()
		switch {
		case in.PaidAt != nil:
			paidAt = *in.PaidAt
		case pay.PaidAt != nil:
			paidAt = *pay.PaidAt
		}
		if err := tx.Payments().MarkPaid(ctx, tx.DB(), paymentID, in.ExternalRef, paidAt); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		paidSum, err := tx.Payments().PaidTotal(ctx, tx.DB(), pay.ReservationID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		next := payment.DeriveStatus(reservation.Status(res.Status), res.TotalAmount, paidSum)
		if next.String() != res.Status {
			if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), pay.ReservationID, next); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.queries.GetByID(ctx, paymentID)
}

func (c *paymentCommands) Remove(ctx context.Context, paymentID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pay, err := tx.Payments().FindForUpdate(ctx, tx.DB(), paymentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrPaymentNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// Only pending payments are deletable; settled rows (paid, cancelled,
		// refunded) stay for the ledger history.
		if pay.Status != payment.StatusPending.String() {
			return errs.Mark(payment.ErrNotPending, errs.ErrCannotDeletePaidPayment)
		}
		if err := tx.Payments().Delete(ctx, tx.DB(), paymentID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *paymentCommands) lockReservation(ctx context.Context, tx shared.Tx, reservationID uuid.UUID) (*shared.ReservationSnapshot, error) {
	res, err := tx.Reservations().FindForUpdate(ctx, tx.DB(), reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}
