package queries

import (
	"context"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type CatalogQueries interface {
	SpaceByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	ListSpaces(ctx context.Context, branchID *uuid.UUID) ([]*SpaceView, error)
	BranchByID(ctx context.Context, id uuid.UUID) (*BranchView, error)
	ListBranches(ctx context.Context) ([]*BranchView, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*CustomerView, error)
	ListCustomers(ctx context.Context) ([]*CustomerView, error)
}

type CatalogReadStore interface {
	FindSpaceByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	FindSpaces(ctx context.Context, branchID *uuid.UUID) ([]*SpaceView, error)
	FindBranchByID(ctx context.Context, id uuid.UUID) (*BranchView, error)
	FindBranches(ctx context.Context) ([]*BranchView, error)
	FindCustomerByID(ctx context.Context, id uuid.UUID) (*CustomerView, error)
	FindCustomers(ctx context.Context) ([]*CustomerView, error)
}

type catalogQueries struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueries{store: store}
}

func (q *catalogQueries) SpaceByID(ctx context.Context, id uuid.UUID) (*SpaceView, error) {
	view, err := q.store.FindSpaceByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSpaceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *catalogQueries) ListSpaces(ctx context.Context, branchID *uuid.UUID) ([]*SpaceView, error) {
	views, err := q.store.FindSpaces(ctx, branchID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *catalogQueries) BranchByID(ctx context.Context, id uuid.UUID) (*BranchView, error) {
	view, err := q.store.FindBranchByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBranchNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *catalogQueries) ListBranches(ctx context.Context) ([]*BranchView, error) {
	views, err := q.store.FindBranches(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *catalogQueries) CustomerByID(ctx context.Context, id uuid.UUID) (*CustomerView, error) {
	view, err := q.store.FindCustomerByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCustomerNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *catalogQueries) ListCustomers(ctx context.Context) ([]*CustomerView, error) {
	views, err := q.store.FindCustomers(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
