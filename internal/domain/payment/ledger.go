package payment

import (
	"errors"
	"fmt"

	"space-booking/internal/domain/reservation"

	"github.com/shopspring/decimal"
)

var ErrAmountExceedsRemaining = errors.New("payment exceeds remaining balance")

// remainingEpsilon absorbs floating rounding accumulated by clients that
// computed amounts in binary floating point before sending them.
var remainingEpsilon = decimal.RequireFromString("0.0001")

// AmountExceedsRemainingError carries the remaining balance so the client can
// render the exact figure.
type AmountExceedsRemainingError struct {
	Remaining decimal.Decimal
}

func (e *AmountExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment exceeds remaining balance of %s", e.Remaining.String())
}

func (e *AmountExceedsRemainingError) Is(target error) bool {
	return target == ErrAmountExceedsRemaining
}

// Remaining is the portion of the reservation total not yet covered by
// committed (pending + paid) payments.
func Remaining(totalAmount, committed decimal.Decimal) decimal.Decimal {
	return totalAmount.Sub(committed)
}

// ExceedsRemaining reports whether registering amount would push the
// committed sum past the reservation total, beyond the rounding tolerance.
func ExceedsRemaining(amount, remaining decimal.Decimal) bool {
	return amount.Sub(remaining).GreaterThan(remainingEpsilon)
}

// CheckRemaining validates a candidate amount against the remaining balance.
func CheckRemaining(amount, remaining decimal.Decimal) error {
	if ExceedsRemaining(amount, remaining) {
		return &AmountExceedsRemainingError{Remaining: remaining}
	}
	return nil
}

// DeriveStatus recomputes a reservation's status from its paid sum. The rule
// lives here, in one place, and is invoked transactionally after every
// payment-state change:
//
//   - a non-pending reservation never changes (confirmation is one-way,
//     cancellation is terminal);
//   - a pending reservation becomes confirmed once the paid sum covers a
//     positive total.
//
// The function is pure and idempotent: applying it twice to the same payment
// set yields the same status.
func DeriveStatus(current reservation.Status, totalAmount, paidSum decimal.Decimal) reservation.Status {
	if current != reservation.StatusPending {
		return current
	}
	if totalAmount.IsPositive() && paidSum.GreaterThanOrEqual(totalAmount) {
		return reservation.StatusConfirmed
	}
	return reservation.StatusPending
}
