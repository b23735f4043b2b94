//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"space-booking/internal/domain/reservation"
	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"
	"space-booking/internal/usecase/shared"
	mock_shared "space-booking/tests/mock/shared"
	mock_usecase "space-booking/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reservationFixture struct {
	uow          *mock_shared.MockUnitOfWork
	tx           *mock_shared.MockTx
	reads        *mock_shared.MockCommandReads
	reservations *mock_shared.MockReservationRepository
	idempotency  *mock_shared.MockIdempotencyRepository
	queries      *mock_usecase.MockReservationQueries
	clock        *clock.Frozen
	commands     commands.ReservationCommands
}

func newReservationFixture(t *testing.T) *reservationFixture {
	ctrl := gomock.NewController(t)

	f := &reservationFixture{
		uow:          mock_shared.NewMockUnitOfWork(ctrl),
		tx:           mock_shared.NewMockTx(ctrl),
		reads:        mock_shared.NewMockCommandReads(ctrl),
		reservations: mock_shared.NewMockReservationRepository(ctrl),
		idempotency:  mock_shared.NewMockIdempotencyRepository(ctrl),
		queries:      mock_usecase.NewMockReservationQueries(ctrl),
		clock:        clock.Freeze(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}

	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Reservations().Return(f.reservations).AnyTimes()
	f.tx.EXPECT().Idempotency().Return(f.idempotency).AnyTimes()

	factory := reservation.NewFactory(reservation.NewHourlyPriceCalculator())
	f.commands = commands.NewReservationCommands(f.uow, factory, f.queries, f.clock)
	return f
}

func (f *reservationFixture) expectWithin() {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		},
	)
}

func validCreateRequest(spaceID, customerID uuid.UUID) reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		SpaceID:      spaceID.String(),
		CustomerID:   customerID.String(),
		CheckInDate:  "2026-03-10",
		CheckOutDate: "2026-03-10",
		StartTime:    "09:00",
		EndTime:      "11:00",
		Occupancy:    4,
	}
}

func activeSpace(id uuid.UUID) *shared.SpaceSnapshot {
	return &shared.SpaceSnapshot{
		ID:         id,
		BranchID:   uuid.New(),
		Name:       "Meeting Room A",
		Capacity:   10,
		HourlyRate: decimal.RequireFromString("100.00"),
		Active:     true,
	}
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", pgx.ErrNoRows)
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("books the space and reports the stored view", func(t *testing.T) {
		f := newReservationFixture(t)
		spaceID, customerID, key := uuid.New(), uuid.New(), uuid.New()
		req := validCreateRequest(spaceID, customerID)

		var createdID uuid.UUID
		f.expectWithin()
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, gomock.Any(), req.Hash(), gomock.Any()).
			Return(true, nil)
		f.reads.EXPECT().SpaceByID(gomock.Any(), spaceID).Return(activeSpace(spaceID), nil)
		f.reads.EXPECT().CustomerByID(gomock.Any(), customerID).
			Return(&shared.CustomerSnapshot{ID: customerID, Name: "Alice", Active: true}, nil)
		f.reservations.EXPECT().LockSpace(gomock.Any(), gomock.Any(), spaceID).Return(nil)
		f.reservations.EXPECT().
			HasOverlap(gomock.Any(), gomock.Any(), spaceID,
				time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)).
			Return(false, nil)
		f.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ infra.DBTX, res *reservation.Reservation) error {
				createdID = res.ID()
				assert.True(t, res.TotalAmount().Equal(decimal.RequireFromString("200.00")))
				return nil
			})
		f.idempotency.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), key, gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
				assert.Equal(t, createdID, id)
				return &queries.ReservationView{ID: id, Status: "pending"}, nil
			})

		result, err := f.commands.Create(ctx, req, key)
		require.NoError(t, err)
		assert.False(t, result.Replayed)
		assert.Equal(t, "pending", result.Reservation.Status)
	})

	t.Run("conflicting interval", func(t *testing.T) {
		f := newReservationFixture(t)
		spaceID, customerID, key := uuid.New(), uuid.New(), uuid.New()
		req := validCreateRequest(spaceID, customerID)

		f.expectWithin()
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, gomock.Any(), req.Hash(), gomock.Any()).
			Return(true, nil)
		f.reads.EXPECT().SpaceByID(gomock.Any(), spaceID).Return(activeSpace(spaceID), nil)
		f.reads.EXPECT().CustomerByID(gomock.Any(), customerID).
			Return(&shared.CustomerSnapshot{ID: customerID, Active: true}, nil)
		f.reservations.EXPECT().LockSpace(gomock.Any(), gomock.Any(), spaceID).Return(nil)
		f.reservations.EXPECT().
			HasOverlap(gomock.Any(), gomock.Any(), spaceID, gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := f.commands.Create(ctx, req, key)
		assert.ErrorIs(t, err, errs.ErrReservationConflict)
	})

	t.Run("unknown space", func(t *testing.T) {
		f := newReservationFixture(t)
		spaceID, customerID, key := uuid.New(), uuid.New(), uuid.New()
		req := validCreateRequest(spaceID, customerID)

		f.expectWithin()
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.reads.EXPECT().SpaceByID(gomock.Any(), spaceID).Return(nil, notFoundErr())

		_, err := f.commands.Create(ctx, req, key)
		assert.ErrorIs(t, err, errs.ErrSpaceNotFound)
	})

	t.Run("inactive space", func(t *testing.T) {
		f := newReservationFixture(t)
		spaceID, customerID, key := uuid.New(), uuid.New(), uuid.New()
		req := validCreateRequest(spaceID, customerID)

		space := activeSpace(spaceID)
		space.Active = false

		f.expectWithin()
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.reads.EXPECT().SpaceByID(gomock.Any(), spaceID).Return(space, nil)

		_, err := f.commands.Create(ctx, req, key)
		assert.ErrorIs(t, err, errs.ErrSpaceNotFound)
	})

	t.Run("occupancy above capacity carries the limit", func(t *testing.T) {
		f := newReservationFixture(t)
		spaceID, customerID, key := uuid.New(), uuid.New(), uuid.New()
		req := validCreateRequest(spaceID, customerID)
		req.Occupancy = 15

		f.expectWithin()
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.reads.EXPECT().SpaceByID(gomock.Any(), spaceID).Return(activeSpace(spaceID), nil)
		f.reads.EXPECT().CustomerByID(gomock.Any(), customerID).
			Return(&shared.CustomerSnapshot{ID: customerID, Active: true}, nil)

		_, err := f.commands.Create(ctx, req, key)
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)

		var capErr *reservation.CapacityExceededError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, 10, capErr.Capacity)
		assert.Equal(t, 15, capErr.Requested)
	})

	t.Run("invalid time range never reaches the unit of work", func(t *testing.T) {
		f := newReservationFixture(t)
		req := validCreateRequest(uuid.New(), uuid.New())
		req.EndTime = "09:00"

		_, err := f.commands.Create(ctx, req, uuid.New())
		assert.ErrorIs(t, err, errs.ErrInvalidTimeRange)
	})

	t.Run("a malformed date is an input error, not a range error", func(t *testing.T) {
		f := newReservationFixture(t)
		req := validCreateRequest(uuid.New(), uuid.New())
		req.CheckInDate = "10-03-2026"

		_, err := f.commands.Create(ctx, req, uuid.New())
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.NotErrorIs(t, err, errs.ErrInvalidTimeRange)
	})

	t.Run("replays a completed idempotency key", func(t *testing.T) {
		f := newReservationFixture(t)
		spaceID, customerID, key := uuid.New(), uuid.New(), uuid.New()
		req := validCreateRequest(spaceID, customerID)
		storedID := uuid.New()

		f.expectWithin()
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, gomock.Any(), req.Hash(), gomock.Any()).
			Return(false, nil)
		f.idempotency.EXPECT().Get(gomock.Any(), gomock.Any(), key).
			Return(&shared.IdempotencyRecord{
				Key:           key,
				RequestHash:   req.Hash(),
				Status:        shared.IdempotencyCompleted,
				ReservationID: &storedID,
			}, nil)
		f.queries.EXPECT().GetByID(gomock.Any(), storedID).
			Return(&queries.ReservationView{ID: storedID, Status: "pending"}, nil)

		result, err := f.commands.Create(ctx, req, key)
		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, storedID, result.Reservation.ID)
	})

	t.Run("rejects a reused key with a different payload", func(t *testing.T) {
		f := newReservationFixture(t)
		spaceID, customerID, key := uuid.New(), uuid.New(), uuid.New()
		req := validCreateRequest(spaceID, customerID)

		f.expectWithin()
		f.idempotency.EXPECT().
			TryInsert(gomock.Any(), gomock.Any(), key, gomock.Any(), req.Hash(), gomock.Any()).
			Return(false, nil)
		f.idempotency.EXPECT().Get(gomock.Any(), gomock.Any(), key).
			Return(&shared.IdempotencyRecord{
				Key:         key,
				RequestHash: "another-hash",
				Status:      shared.IdempotencyCompleted,
			}, nil)

		_, err := f.commands.Create(ctx, req, key)
		assert.ErrorIs(t, err, errs.ErrDuplicateReservation)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels whatever the payment state", func(t *testing.T) {
		f := newReservationFixture(t)
		id := uuid.New()

		f.expectWithin()
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), id).
			Return(&shared.ReservationSnapshot{ID: id, Status: "confirmed"}, nil)
		f.reservations.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), id, reservation.StatusCancelled).
			Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), id).
			Return(&queries.ReservationView{ID: id, Status: "cancelled"}, nil)

		view, err := f.commands.Cancel(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", view.Status)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		f := newReservationFixture(t)
		id := uuid.New()

		f.expectWithin()
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), id).
			Return(&shared.ReservationSnapshot{ID: id, Status: "cancelled"}, nil)
		f.queries.EXPECT().GetByID(gomock.Any(), id).
			Return(&queries.ReservationView{ID: id, Status: "cancelled"}, nil)

		view, err := f.commands.Cancel(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", view.Status)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newReservationFixture(t)
		id := uuid.New()

		f.expectWithin()
		f.reservations.EXPECT().FindForUpdate(gomock.Any(), gomock.Any(), id).
			Return(nil, notFoundErr())

		_, err := f.commands.Cancel(ctx, id)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}
