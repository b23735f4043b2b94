package readstore

import (
	"context"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type CatalogReadStore struct {
	db infra.DBTX
}

func NewCatalogReadStore(db infra.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

const selectSpaceView = `
SELECT s.id, s.branch_id, b.name, s.name, s.capacity, s.hourly_rate, s.active,
       s.created_at, s.updated_at
FROM spaces s
JOIN branches b ON b.id = s.branch_id
`

func (s *CatalogReadStore) FindSpaceByID(ctx context.Context, id uuid.UUID) (*queries.SpaceView, error) {
	row := s.db.QueryRow(ctx, selectSpaceView+` WHERE s.id = $1`, pgconv.UUIDToPgtype(id))
	view, err := scanSpaceView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read space view", err)
	}
	return view, nil
}

func (s *CatalogReadStore) FindSpaces(ctx context.Context, branchID *uuid.UUID) ([]*queries.SpaceView, error) {
	rows, err := s.db.Query(ctx,
		selectSpaceView+` WHERE ($1::uuid IS NULL OR s.branch_id = $1) ORDER BY b.name, s.name`,
		pgconv.UUIDPtrToPgtype(branchID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces", err)
	}
	defer rows.Close()

	views := make([]*queries.SpaceView, 0)
	for rows.Next() {
		view, err := scanSpaceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan space row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate space rows", err)
	}
	return views, nil
}

func scanSpaceView(row pgx.Row) (*queries.SpaceView, error) {
	var (
		spaceID, branchID    uuid.UUID
		branchName, name     string
		capacity             int32
		hourlyRate           decimal.Decimal
		active               bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&spaceID, &branchID, &branchName, &name, &capacity, &hourlyRate, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return &queries.SpaceView{
		ID:         spaceID,
		BranchID:   branchID,
		BranchName: branchName,
		Name:       name,
		Capacity:   capacity,
		HourlyRate: hourlyRate,
		Active:     active,
		CreatedAt:  pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:  pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func (s *CatalogReadStore) FindBranchByID(ctx context.Context, id uuid.UUID) (*queries.BranchView, error) {
	var (
		branchID  uuid.UUID
		name      string
		createdAt pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM branches WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&branchID, &name, &createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read branch view", err)
	}
	return &queries.BranchView{ID: branchID, Name: name, CreatedAt: pgconv.TimeFromPgtype(createdAt)}, nil
}

func (s *CatalogReadStore) FindBranches(ctx context.Context) ([]*queries.BranchView, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, created_at FROM branches ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list branches", err)
	}
	defer rows.Close()

	views := make([]*queries.BranchView, 0)
	for rows.Next() {
		var (
			branchID  uuid.UUID
			name      string
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&branchID, &name, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan branch row", err)
		}
		views = append(views, &queries.BranchView{
			ID:        branchID,
			Name:      name,
			CreatedAt: pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate branch rows", err)
	}
	return views, nil
}

const selectCustomerView = `
SELECT id, name, email, phone, document, active, created_at
FROM customers
`

func (s *CatalogReadStore) FindCustomerByID(ctx context.Context, id uuid.UUID) (*queries.CustomerView, error) {
	row := s.db.QueryRow(ctx, selectCustomerView+` WHERE id = $1`, pgconv.UUIDToPgtype(id))
	view, err := scanCustomerView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read customer view", err)
	}
	return view, nil
}

func (s *CatalogReadStore) FindCustomers(ctx context.Context) ([]*queries.CustomerView, error) {
	rows, err := s.db.Query(ctx, selectCustomerView+` ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	defer rows.Close()

	views := make([]*queries.CustomerView, 0)
	for rows.Next() {
		view, err := scanCustomerView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate customer rows", err)
	}
	return views, nil
}

func scanCustomerView(row pgx.Row) (*queries.CustomerView, error) {
	var (
		customerID      uuid.UUID
		name, email     string
		phone, document pgtype.Text
		active          bool
		createdAt       pgtype.Timestamptz
	)
	err := row.Scan(&customerID, &name, &email, &phone, &document, &active, &createdAt)
	if err != nil {
		return nil, err
	}
	return &queries.CustomerView{
		ID:        customerID,
		Name:      name,
		Email:     email,
		Phone:     pgconv.StringPtrFromPgtype(phone),
		Document:  pgconv.StringPtrFromPgtype(document),
		Active:    active,
		CreatedAt: pgconv.TimeFromPgtype(createdAt),
	}, nil
}
