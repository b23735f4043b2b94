package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpaceSnapshot is the command-side read of a space, taken inside the same
// transaction that books it.
type SpaceSnapshot struct {
	ID         uuid.UUID
	BranchID   uuid.UUID
	Name       string
	Capacity   int
	HourlyRate decimal.Decimal
	Active     bool
}

type CustomerSnapshot struct {
	ID     uuid.UUID
	Name   string
	Active bool
}

// ReservationSnapshot carries only what the payment flows need: the status
// transition input and the total-amount bound.
type ReservationSnapshot struct {
	ID          uuid.UUID
	SpaceID     uuid.UUID
	BranchID    uuid.UUID
	CustomerID  uuid.UUID
	Status      string
	TotalAmount decimal.Decimal
}

type PaymentSnapshot struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Amount        decimal.Decimal
	Method        string
	Purpose       string
	Status        string
	ExternalRef   *string
	PaidAt        *time.Time
}

// Idempotency record states.
const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key           uuid.UUID
	Endpoint      string
	RequestHash   string
	Status        string
	ReservationID *uuid.UUID
	ExpiresAt     time.Time
}

type CreateSpaceParams struct {
	BranchID   uuid.UUID
	Name       string
	Capacity   int
	HourlyRate decimal.Decimal
}

type CreateCustomerParams struct {
	Name     string
	Email    string
	Phone    *string
	Document *string
}
