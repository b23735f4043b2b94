package errs

import "errors"

// Domain-specific sentinel errors shared by the CQRS usecase layers
var (
	// Catalog errors
	ErrSpaceNotFound    = errors.New("space not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrEmailAlreadyUsed = errors.New("email already used")

	// Reservation errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationConflict  = errors.New("reservation conflict")
	ErrInvalidTimeRange     = errors.New("invalid time range")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrDuplicateReservation = errors.New("duplicate reservation")

	// Payment errors
	ErrPaymentNotFound         = errors.New("payment not found")
	ErrInvalidAmount           = errors.New("invalid payment amount")
	ErrAmountExceedsRemaining  = errors.New("amount exceeds remaining balance")
	ErrCannotDeletePaidPayment = errors.New("cannot delete a paid payment")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
