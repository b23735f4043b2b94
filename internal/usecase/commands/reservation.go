package commands

import (
	"context"
	"time"

	"space-booking/internal/domain/reservation"
	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/queries"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createReservationEndpoint = "POST /api/reservations"
	idempotencyKeyTTL         = 24 * time.Hour
)

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	// Replayed is true when the idempotency key matched a completed request
	// and the stored outcome was returned instead of booking again.
	Replayed bool
}

type ReservationCommands interface {
	Create(ctx context.Context, req reqdto.CreateReservationRequest, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
	Cancel(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommands struct {
	uow     shared.UnitOfWork
	factory *reservation.Factory
	queries queries.ReservationQueries
	clock   clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommands{
		uow:     uow,
		factory: factory,
		queries: reservationQueries,
		clock:   clk,
	}
}

func (c *reservationCommands) Create(ctx context.Context, req reqdto.CreateReservationRequest, idempotencyKey uuid.UUID) (*CreateReservationResult, error) {
	spaceID, err := req.SpaceUUID()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	customerID, err := req.CustomerUUID()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	span, err := req.Span()
	if err != nil {
		return nil, markSpanError(err)
	}

	var (
		reservationID uuid.UUID
		replayed      bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(
			ctx, tx.DB(),
			idempotencyKey, createReservationEndpoint, req.Hash(),
			c.clock.Now().Add(idempotencyKeyTTL),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if !inserted {
			record, err := tx.Idempotency().Get(ctx, tx.DB(), idempotencyKey)
			if err != nil {
				return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
			}
			if record.RequestHash != req.Hash() {
				return errs.Mark(errs.New("idempotency key reused with a different payload"), errs.ErrDuplicateReservation)
			}
			if record.Status == shared.IdempotencyCompleted && record.ReservationID != nil {
				reservationID = *record.ReservationID
				replayed = true
				return nil
			}
			return errs.Mark(errs.New("request with this idempotency key is still processing"), errs.ErrIdempotencyInProgress)
		}

		space, err := c.lookupSpace(ctx, tx, spaceID)
		if err != nil {
			return err
		}
		if err := c.checkCustomer(ctx, tx, customerID); err != nil {
			return err
		}

		res, err := c.factory.CreateReservation(
			reservation.SpaceSpec{
				ID:         space.ID,
				BranchID:   space.BranchID,
				Capacity:   space.Capacity,
				HourlyRate: space.HourlyRate,
				Active:     space.Active,
			},
			customerID, span,
			req.Occupancy, req.DepositPercentOrDefault(), req.NotesValue(),
		)
		if err != nil {
			return markFactoryError(err)
		}

		// Serialize per space so the overlap check and the insert are atomic
		// against concurrent bookings of the same space.
		if err := tx.Reservations().LockSpace(ctx, tx.DB(), spaceID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		overlap, err := tx.Reservations().HasOverlap(ctx, tx.DB(), spaceID, span.StartAt(), span.EndAt())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if overlap {
			return errs.Mark(errs.New("space already booked for the requested interval"), errs.ErrReservationConflict)
		}

		if err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
			// The exclusion constraint is the backstop for races the advisory
			// lock did not cover.
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, errs.ErrReservationConflict)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Idempotency().MarkCompleted(ctx, tx.DB(), idempotencyKey, res.ID()); err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		reservationID = res.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.queries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return &CreateReservationResult{Reservation: view, Replayed: replayed}, nil
}

// Cancel is unconditional: it succeeds whatever the reservation's payment
// state, and cancelling an already cancelled reservation is a no-op.
func (c *reservationCommands) Cancel(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reservations().FindForUpdate(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrReservationNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.Status == reservation.StatusCancelled.String() {
			return nil
		}
		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), id, reservation.StatusCancelled); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.queries.GetByID(ctx, id)
}

func (c *reservationCommands) lookupSpace(ctx context.Context, tx shared.Tx, spaceID uuid.UUID) (*shared.SpaceSnapshot, error) {
	space, err := tx.Reads().SpaceByID(ctx, spaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSpaceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !space.Active {
		return nil, errs.Mark(errs.New("space is inactive"), errs.ErrSpaceNotFound)
	}
	return space, nil
}

func (c *reservationCommands) checkCustomer(ctx context.Context, tx shared.Tx, customerID uuid.UUID) error {
	customer, err := tx.Reads().CustomerByID(ctx, customerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrCustomerNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !customer.Active {
		return errs.Mark(errs.New("customer is inactive"), errs.ErrCustomerNotFound)
	}
	return nil
}

// markSpanError separates ordering violations from unparseable date and time
// fields, which are plain input errors.
func markSpanError(err error) error {
	if errs.Is(err, reservation.ErrInvalidTimeRange) || errs.Is(err, reservation.ErrInvalidTimeOfDay) {
		return errs.Mark(err, errs.ErrInvalidTimeRange)
	}
	return errs.Mark(err, errs.ErrDomainValidation)
}

func markFactoryError(err error) error {
	switch {
	case errs.Is(err, reservation.ErrCapacityExceeded):
		return errs.Mark(err, errs.ErrCapacityExceeded)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
