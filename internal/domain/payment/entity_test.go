//go:build unit

package payment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	reservationID := uuid.New()

	t.Run("valid payment starts pending", func(t *testing.T) {
		p, err := NewPayment(reservationID, dec("50.00"), MethodPix, PurposeDeposit, nil)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, p.Status())
		assert.Equal(t, reservationID, p.ReservationID())
		assert.Nil(t, p.PaidAt())
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := NewPayment(reservationID, dec("0"), MethodPix, PurposeDeposit, nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := NewPayment(reservationID, dec("-10.00"), MethodCash, PurposeBalance, nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := NewPayment(reservationID, dec("10.00"), Method("check"), PurposeBalance, nil)
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("unknown purpose", func(t *testing.T) {
		_, err := NewPayment(reservationID, dec("10.00"), MethodCard, Purpose("tip"), nil)
		assert.ErrorIs(t, err, ErrInvalidPurpose)
	})
}

func TestMarkPaid(t *testing.T) {
	p, err := NewPayment(uuid.New(), dec("50.00"), MethodBoleto, PurposeBalance, nil)
	require.NoError(t, err)

	paidAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ref := "bank-ref-1"
	p.MarkPaid(&ref, paidAt)

	assert.True(t, p.IsPaid())
	require.NotNil(t, p.PaidAt())
	assert.Equal(t, paidAt, *p.PaidAt())
	require.NotNil(t, p.ExternalRef())
	assert.Equal(t, ref, *p.ExternalRef())

	// Re-confirming keeps the existing reference when none is given.
	later := paidAt.Add(time.Hour)
	p.MarkPaid(nil, later)
	assert.True(t, p.IsPaid())
	assert.Equal(t, later, *p.PaidAt())
	assert.Equal(t, ref, *p.ExternalRef())
}

func TestStatusCommitted(t *testing.T) {
	assert.True(t, StatusPending.Committed())
	assert.True(t, StatusPaid.Committed())
	assert.False(t, StatusCancelled.Committed())
	assert.False(t, StatusRefunded.Committed())
}
