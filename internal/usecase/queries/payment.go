package queries

import (
	"context"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type PaymentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	// List returns payments matching every set filter field, newest first.
	List(ctx context.Context, filter PaymentFilter) ([]*PaymentListItem, error)
}

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	Search(ctx context.Context, filter PaymentFilter) ([]*PaymentListItem, error)
}

type paymentQueries struct {
	store PaymentReadStore
}

func NewPaymentQueries(store PaymentReadStore) PaymentQueries {
	return &paymentQueries{store: store}
}

func (q *paymentQueries) GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPaymentNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *paymentQueries) List(ctx context.Context, filter PaymentFilter) ([]*PaymentListItem, error) {
	items, err := q.store.Search(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}
