package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount  = errors.New("payment amount must be positive")
	ErrInvalidMethod  = errors.New("unknown payment method")
	ErrInvalidPurpose = errors.New("unknown payment purpose")
	ErrNotPending     = errors.New("only a pending payment can be deleted")
)

type Payment struct {
	id            uuid.UUID
	reservationID uuid.UUID
	amount        decimal.Decimal
	method        Method
	purpose       Purpose
	status        Status
	externalRef   *string
	paidAt        *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPayment(
	reservationID uuid.UUID,
	amount decimal.Decimal,
	method Method,
	purpose Purpose,
	externalRef *string,
) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if !purpose.IsValid() {
		return nil, ErrInvalidPurpose
	}

	return &Payment{
		id:            uuid.New(),
		reservationID: reservationID,
		amount:        amount,
		method:        method,
		purpose:       purpose,
		status:        StatusPending,
		externalRef:   externalRef,
	}, nil
}

func ReconstructPayment(
	id, reservationID uuid.UUID,
	amount decimal.Decimal,
	method Method,
	purpose Purpose,
	status Status,
	externalRef *string,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		reservationID: reservationID,
		amount:        amount,
		method:        method,
		purpose:       purpose,
		status:        status,
		externalRef:   externalRef,
		paidAt:        paidAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// MarkPaid confirms the payment. Re-confirming an already paid payment only
// refreshes the external reference and paid-at timestamp.
func (p *Payment) MarkPaid(externalRef *string, paidAt time.Time) {
	p.status = StatusPaid
	p.paidAt = &paidAt
	if externalRef != nil {
		p.externalRef = externalRef
	}
}

func (p *Payment) IsPaid() bool {
	return p.status == StatusPaid
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) ReservationID() uuid.UUID { return p.reservationID }
func (p *Payment) Amount() decimal.Decimal  { return p.amount }
func (p *Payment) Method() Method           { return p.method }
func (p *Payment) Purpose() Purpose         { return p.purpose }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) ExternalRef() *string     { return p.externalRef }
func (p *Payment) PaidAt() *time.Time       { return p.paidAt }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }
