//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"space-booking/internal/domain/payment"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"
	"space-booking/internal/usecase/shared"
	mock_shared "space-booking/tests/mock/shared"
	mock_usecase "space-booking/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentFixture struct {
	uow          *mock_shared.MockUnitOfWork
	tx           *mock_shared.MockTx
	reservations *mock_shared.MockReservationRepository
	payments     *mock_shared.MockPaymentRepository
	queries      *mock_usecase.MockPaymentQueries
	clock        *clock.Frozen
	commands     commands.PaymentCommands
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	ctrl := gomock.NewController(t)

	f := &paymentFixture{
		uow:          mock_shared.NewMockUnitOfWork(ctrl),
		tx:           mock_shared.NewMockTx(ctrl),
		reservations: mock_shared.NewMockReservationRepository(ctrl),
		payments:     mock_shared.NewMockPaymentRepository(ctrl),
		queries:      mock_usecase.NewMockPaymentQueries(ctrl),
		clock:        clock.Freeze(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}

	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	f.tx.EXPECT().Reservations().Return(f.reservations).AnyTimes()
	f.tx.EXPECT().Payments().Return(f.payments).AnyTimes()

	f.commands = commands.NewPaymentCommands(f.uow, f.queries, f.clock)
	return f
}

func (f *paymentFixture) expectWithin() {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		},
	)
}

func pendingReservation(id uuid.UUID, total string) *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:          id,
		SpaceID:     uuid.New(),
		BranchID:    uuid.New(),
		CustomerID:  uuid.New(),
		Status:      "pending",
		TotalAmount: decimal.RequireFromString(total),
	}
}

func TestRegisterPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a pending payment within the remaining balance", func(t *testing.T) {
		f := newPaymentFixture(t)
		reservationID := uuid.New()

		f.expectWithin()
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(pendingReservation(reservationID, "200.00"), nil)
		f.payments.EXPECT().CommittedTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("80.00"), nil)
		f.payments.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, p *payment.Payment) error {
				assert.Equal(t, payment.StatusPending, p.Status())
				assert.True(t, p.Amount().Equal(decimal.RequireFromString("120.00")))
				return nil
			})
		f.queries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(&queries.PaymentView{Status: "pending"}, nil)

		view, err := f.commands.Register(ctx, reservationID, commands.RegisterPaymentInput{
			Amount:  decimal.RequireFromString("120.00"),
			Method:  "pix",
			Purpose: "balance",
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", view.Status)
	})

	t.Run("rejects an amount above the remaining balance", func(t *testing.T) {
		f := newPaymentFixture(t)
		reservationID := uuid.New()

		f.expectWithin()
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(pendingReservation(reservationID, "200.00"), nil)
		f.payments.EXPECT().CommittedTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("150.00"), nil)

		_, err := f.commands.Register(ctx, reservationID, commands.RegisterPaymentInput{
			Amount:  decimal.RequireFromString("60.00"),
			Method:  "card",
			Purpose: "balance",
		})
		require.ErrorIs(t, err, errs.ErrAmountExceedsRemaining)

		var amtErr *payment.AmountExceedsRemainingError
		require.ErrorAs(t, err, &amtErr)
		assert.True(t, amtErr.Remaining.Equal(decimal.RequireFromString("50.00")))
	})

	t.Run("tolerates float dust on the final installment", func(t *testing.T) {
		f := newPaymentFixture(t)
		reservationID := uuid.New()

		f.expectWithin()
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(pendingReservation(reservationID, "200.00"), nil)
		f.payments.EXPECT().CommittedTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("150.00"), nil)
		f.payments.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(&queries.PaymentView{Status: "pending"}, nil)

		_, err := f.commands.Register(ctx, reservationID, commands.RegisterPaymentInput{
			Amount:  decimal.RequireFromString("50.0001"),
			Method:  "pix",
			Purpose: "balance",
		})
		assert.NoError(t, err)
	})

	t.Run("non-positive amount fails before any transaction", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.commands.Register(ctx, uuid.New(), commands.RegisterPaymentInput{
			Amount:  decimal.Zero,
			Method:  "pix",
			Purpose: "deposit",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newPaymentFixture(t)
		reservationID := uuid.New()

		f.expectWithin()
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(nil, notFoundErr())

		_, err := f.commands.Register(ctx, reservationID, commands.RegisterPaymentInput{
			Amount:  decimal.RequireFromString("10.00"),
			Method:  "cash",
			Purpose: "deposit",
		})
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("marks paid and confirms the reservation once covered", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID, reservationID := uuid.New(), uuid.New()

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{
				ID:            paymentID,
				ReservationID: reservationID,
				Amount:        decimal.RequireFromString("200.00"),
				Status:        "pending",
			}, nil)
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(pendingReservation(reservationID, "200.00"), nil)
		f.payments.EXPECT().
			MarkPaid(gomock.Any(), gomock.Any(), paymentID, gomock.Nil(), f.clock.Now()).
			Return(nil)
		f.payments.EXPECT().PaidTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("200.00"), nil)
		f.reservations.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), reservationID, gomock.Any()).
			Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), paymentID).
			Return(&queries.PaymentView{ID: paymentID, Status: "paid"}, nil)

		view, err := f.commands.Confirm(ctx, paymentID, commands.ConfirmPaymentInput{})
		require.NoError(t, err)
		assert.Equal(t, "paid", view.Status)
	})

	t.Run("partial coverage keeps the reservation pending", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID, reservationID := uuid.New(), uuid.New()

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{
				ID:            paymentID,
				ReservationID: reservationID,
				Amount:        decimal.RequireFromString("80.00"),
				Status:        "pending",
			}, nil)
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(pendingReservation(reservationID, "200.00"), nil)
		f.payments.EXPECT().
			MarkPaid(gomock.Any(), gomock.Any(), paymentID, gomock.Any(), gomock.Any()).
			Return(nil)
		f.payments.EXPECT().PaidTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("80.00"), nil)
		f.queries.EXPECT().GetByID(gomock.Any(), paymentID).
			Return(&queries.PaymentView{ID: paymentID, Status: "paid"}, nil)

		_, err := f.commands.Confirm(ctx, paymentID, commands.ConfirmPaymentInput{})
		assert.NoError(t, err)
	})

	t.Run("re-confirming a paid payment refreshes the provider reference", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID, reservationID := uuid.New(), uuid.New()
		originalPaidAt := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
		correctedRef := "bank-999"

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{
				ID:            paymentID,
				ReservationID: reservationID,
				Amount:        decimal.RequireFromString("200.00"),
				Status:        "paid",
				PaidAt:        &originalPaidAt,
			}, nil)
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(&shared.ReservationSnapshot{
				ID:          reservationID,
				Status:      "confirmed",
				TotalAmount: decimal.RequireFromString("200.00"),
			}, nil)
		f.payments.EXPECT().
			MarkPaid(gomock.Any(), gomock.Any(), paymentID, gomock.Any(), originalPaidAt).
			DoAndReturn(func(_ context.Context, _ any, _ uuid.UUID, ref *string, _ time.Time) error {
				require.NotNil(t, ref)
				assert.Equal(t, correctedRef, *ref)
				return nil
			})
		f.payments.EXPECT().PaidTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("200.00"), nil)
		f.queries.EXPECT().GetByID(gomock.Any(), paymentID).
			Return(&queries.PaymentView{ID: paymentID, Status: "paid", ExternalRef: &correctedRef}, nil)

		view, err := f.commands.Confirm(ctx, paymentID, commands.ConfirmPaymentInput{
			ExternalRef: &correctedRef,
		})
		require.NoError(t, err)
		require.NotNil(t, view.ExternalRef)
		assert.Equal(t, correctedRef, *view.ExternalRef)
	})

	t.Run("re-confirming without a paid-at keeps the original timestamp", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID, reservationID := uuid.New(), uuid.New()
		originalPaidAt := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{
				ID:            paymentID,
				ReservationID: reservationID,
				Amount:        decimal.RequireFromString("200.00"),
				Status:        "paid",
				PaidAt:        &originalPaidAt,
			}, nil)
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(&shared.ReservationSnapshot{
				ID:          reservationID,
				Status:      "confirmed",
				TotalAmount: decimal.RequireFromString("200.00"),
			}, nil)
		f.payments.EXPECT().
			MarkPaid(gomock.Any(), gomock.Any(), paymentID, gomock.Nil(), originalPaidAt).
			Return(nil)
		f.payments.EXPECT().PaidTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("200.00"), nil)
		f.queries.EXPECT().GetByID(gomock.Any(), paymentID).
			Return(&queries.PaymentView{ID: paymentID, Status: "paid"}, nil)

		_, err := f.commands.Confirm(ctx, paymentID, commands.ConfirmPaymentInput{})
		assert.NoError(t, err)
	})

	t.Run("a cancelled reservation never revives on payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID, reservationID := uuid.New(), uuid.New()

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{
				ID:            paymentID,
				ReservationID: reservationID,
				Amount:        decimal.RequireFromString("200.00"),
				Status:        "pending",
			}, nil)
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), reservationID).
			Return(&shared.ReservationSnapshot{
				ID:          reservationID,
				Status:      "cancelled",
				TotalAmount: decimal.RequireFromString("200.00"),
			}, nil)
		f.payments.EXPECT().
			MarkPaid(gomock.Any(), gomock.Any(), paymentID, gomock.Any(), gomock.Any()).
			Return(nil)
		f.payments.EXPECT().PaidTotal(gomock.Any(), gomock.Any(), reservationID).
			Return(decimal.RequireFromString("200.00"), nil)
		f.queries.EXPECT().GetByID(gomock.Any(), paymentID).
			Return(&queries.PaymentView{ID: paymentID, Status: "paid"}, nil)

		_, err := f.commands.Confirm(ctx, paymentID, commands.ConfirmPaymentInput{})
		assert.NoError(t, err)
	})
}

func TestRemovePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a pending payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID := uuid.New()

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{ID: paymentID, Status: "pending"}, nil)
		f.payments.EXPECT().Delete(gomock.Any(), gomock.Any(), paymentID).Return(nil)

		assert.NoError(t, f.commands.Remove(ctx, paymentID))
	})

	t.Run("refuses to delete a paid payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID := uuid.New()

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{ID: paymentID, Status: "paid"}, nil)

		assert.ErrorIs(t, f.commands.Remove(ctx, paymentID), errs.ErrCannotDeletePaidPayment)
	})

	t.Run("refuses to delete a refunded payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID := uuid.New()

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(&shared.PaymentSnapshot{ID: paymentID, Status: "refunded"}, nil)

		assert.ErrorIs(t, f.commands.Remove(ctx, paymentID), errs.ErrCannotDeletePaidPayment)
	})

	t.Run("unknown payment", func(t *testing.T) {
		f := newPaymentFixture(t)
		paymentID := uuid.New()

		f.expectWithin()
		f.payments.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), paymentID).
			Return(nil, notFoundErr())

		assert.ErrorIs(t, f.commands.Remove(ctx, paymentID), errs.ErrPaymentNotFound)
	})
}
