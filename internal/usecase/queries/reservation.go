package queries

import (
	"context"
	"time"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// ListBySpace returns the space's reservations, optionally narrowed to
	// those whose stay covers onDate.
	ListBySpace(ctx context.Context, spaceID uuid.UUID, onDate *time.Time) ([]*ReservationListItem, error)
}

// ReservationReadStore is the persistence port for the reservation read side.
type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindBySpace(ctx context.Context, spaceID uuid.UUID, onDate *time.Time) ([]*ReservationListItem, error)
}

type reservationQueries struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueries{store: store}
}

func (q *reservationQueries) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *reservationQueries) ListBySpace(ctx context.Context, spaceID uuid.UUID, onDate *time.Time) ([]*ReservationListItem, error) {
	items, err := q.store.FindBySpace(ctx, spaceID, onDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}
