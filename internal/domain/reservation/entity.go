package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOccupancy      = errors.New("occupancy must be at least one")
	ErrCapacityExceeded      = errors.New("occupancy exceeds space capacity")
	ErrInvalidDepositPercent = errors.New("deposit percent must be between 0 and 100")
	ErrNegativeRate          = errors.New("hourly rate cannot be negative")
	ErrAlreadyCancelled      = errors.New("reservation is already cancelled")
	ErrNotPending            = errors.New("only a pending reservation can be confirmed")
)

// CapacityExceededError reports both the limit and the requested count so
// callers can render a specific message.
type CapacityExceededError struct {
	Capacity  int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("occupancy %d exceeds space capacity %d", e.Requested, e.Capacity)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// SpaceSpec is the booking-relevant snapshot of a space, read fresh from the
// catalog at creation time. Rates and capacities are never cached across a
// reservation's lifetime.
type SpaceSpec struct {
	ID         uuid.UUID
	BranchID   uuid.UUID
	Capacity   int
	HourlyRate decimal.Decimal
	Active     bool
}

type Reservation struct {
	id             uuid.UUID
	spaceID        uuid.UUID
	branchID       uuid.UUID
	customerID     uuid.UUID
	span           Span
	occupancy      int
	status         Status
	totalAmount    decimal.Decimal
	depositPercent int
	notes          Notes
	createdAt      time.Time
	updatedAt      time.Time
}

// Factory assembles reservations with the configured pricing policy.
type Factory struct {
	PriceCalculator PriceCalculator
}

func NewFactory(priceCalculator PriceCalculator) *Factory {
	return &Factory{PriceCalculator: priceCalculator}
}

func (f *Factory) CreateReservation(
	space SpaceSpec,
	customerID uuid.UUID,
	span Span,
	occupancy int,
	depositPercent int,
	notes Notes,
) (*Reservation, error) {
	if occupancy < 1 {
		return nil, ErrInvalidOccupancy
	}
	if occupancy > space.Capacity {
		return nil, &CapacityExceededError{Capacity: space.Capacity, Requested: occupancy}
	}
	if depositPercent < 0 || depositPercent > 100 {
		return nil, ErrInvalidDepositPercent
	}
	if space.HourlyRate.IsNegative() {
		return nil, ErrNegativeRate
	}

	total := f.PriceCalculator.Total(space.HourlyRate, span)

	return &Reservation{
		id:             uuid.New(),
		spaceID:        space.ID,
		branchID:       space.BranchID,
		customerID:     customerID,
		span:           span,
		occupancy:      occupancy,
		status:         StatusPending,
		totalAmount:    total,
		depositPercent: depositPercent,
		notes:          notes,
	}, nil
}

func ReconstructReservation(
	id, spaceID, branchID, customerID uuid.UUID,
	span Span,
	occupancy int,
	status Status,
	totalAmount decimal.Decimal,
	depositPercent int,
	notes Notes,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:             id,
		spaceID:        spaceID,
		branchID:       branchID,
		customerID:     customerID,
		span:           span,
		occupancy:      occupancy,
		status:         status,
		totalAmount:    totalAmount,
		depositPercent: depositPercent,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Cancel is terminal: a cancelled reservation can never be reactivated and
// stops counting toward conflicts immediately.
func (r *Reservation) Cancel() error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.status = StatusCancelled
	return nil
}

// Confirm transitions pending -> confirmed. It is reached only through
// payment reconciliation, never directly.
func (r *Reservation) Confirm() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusConfirmed
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status != StatusCancelled
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) SpaceID() uuid.UUID          { return r.spaceID }
func (r *Reservation) BranchID() uuid.UUID         { return r.branchID }
func (r *Reservation) CustomerID() uuid.UUID       { return r.customerID }
func (r *Reservation) Span() Span                  { return r.span }
func (r *Reservation) Occupancy() int              { return r.occupancy }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) TotalAmount() decimal.Decimal { return r.totalAmount }
func (r *Reservation) DepositPercent() int         { return r.depositPercent }
func (r *Reservation) Notes() Notes                { return r.notes }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
