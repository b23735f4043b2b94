package repository

import (
	"context"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) CreateBranch(ctx context.Context, db infra.DBTX, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx,
		`INSERT INTO branches (name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert branch", err)
	}
	return id, nil
}

const insertSpace = `
INSERT INTO spaces (branch_id, name, capacity, hourly_rate)
VALUES ($1, $2, $3, $4)
RETURNING id
`

func (r *CatalogRepository) CreateSpace(ctx context.Context, db infra.DBTX, params shared.CreateSpaceParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, insertSpace,
		pgconv.UUIDToPgtype(params.BranchID),
		params.Name,
		params.Capacity,
		params.HourlyRate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert space", err)
	}
	return id, nil
}

const insertCustomer = `
INSERT INTO customers (name, email, phone, document)
VALUES ($1, $2, $3, $4)
RETURNING id
`

func (r *CatalogRepository) CreateCustomer(ctx context.Context, db infra.DBTX, params shared.CreateCustomerParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx, insertCustomer,
		params.Name,
		params.Email,
		pgconv.StringPtrToPgtype(params.Phone),
		pgconv.StringPtrToPgtype(params.Document),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert customer", err)
	}
	return id, nil
}
