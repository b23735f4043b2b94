package commands

import (
	"context"

	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/queries"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogCommands interface {
	CreateBranch(ctx context.Context, req reqdto.CreateBranchRequest) (*queries.BranchView, error)
	CreateSpace(ctx context.Context, req reqdto.CreateSpaceRequest) (*queries.SpaceView, error)
	CreateCustomer(ctx context.Context, req reqdto.CreateCustomerRequest) (*queries.CustomerView, error)
}

type catalogCommands struct {
	uow            shared.UnitOfWork
	catalogQueries queries.CatalogQueries
}

func NewCatalogCommands(uow shared.UnitOfWork, catalogQueries queries.CatalogQueries) CatalogCommands {
	return &catalogCommands{uow: uow, catalogQueries: catalogQueries}
}

func (c *catalogCommands) CreateBranch(ctx context.Context, req reqdto.CreateBranchRequest) (*queries.BranchView, error) {
	var id uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		branchID, err := tx.Catalog().CreateBranch(ctx, tx.DB(), req.Name)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		id = branchID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.catalogQueries.BranchByID(ctx, id)
}

func (c *catalogCommands) CreateSpace(ctx context.Context, req reqdto.CreateSpaceRequest) (*queries.SpaceView, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if req.HourlyRate.IsNegative() {
		return nil, errs.Mark(errs.New("hourly rate cannot be negative"), errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Reads().BranchExists(ctx, branchID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !exists {
			return errs.Mark(errs.New("branch does not exist"), errs.ErrBranchNotFound)
		}

		spaceID, err := tx.Catalog().CreateSpace(ctx, tx.DB(), shared.CreateSpaceParams{
			BranchID:   branchID,
			Name:       req.Name,
			Capacity:   req.Capacity,
			HourlyRate: req.HourlyRate,
		})
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, errs.ErrBranchNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		id = spaceID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.catalogQueries.SpaceByID(ctx, id)
}

func (c *catalogCommands) CreateCustomer(ctx context.Context, req reqdto.CreateCustomerRequest) (*queries.CustomerView, error) {
	var id uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		customerID, err := tx.Catalog().CreateCustomer(ctx, tx.DB(), shared.CreateCustomerParams{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Document: req.Document,
		})
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrEmailAlreadyUsed)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		id = customerID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.catalogQueries.CustomerByID(ctx, id)
}
