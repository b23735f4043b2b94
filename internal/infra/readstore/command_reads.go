package readstore

import (
	"context"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommandReadStore serves the reads commands make for their own decisions.
// Backed by the pool it reads committed state; backed by a transaction it
// sees that transaction's writes.
type CommandReadStore struct {
	db infra.DBTX
}

func NewCommandReadStore(db infra.DBTX) *CommandReadStore {
	return &CommandReadStore{db: db}
}

const selectSpaceSnapshot = `
SELECT id, branch_id, name, capacity, hourly_rate, active
FROM spaces
WHERE id = $1
`

func (s *CommandReadStore) SpaceByID(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	var (
		spaceID, branchID uuid.UUID
		name              string
		capacity          int
		hourlyRate        decimal.Decimal
		active            bool
	)
	err := s.db.QueryRow(ctx, selectSpaceSnapshot, pgconv.UUIDToPgtype(id)).
		Scan(&spaceID, &branchID, &name, &capacity, &hourlyRate, &active)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read space", err)
	}
	return &shared.SpaceSnapshot{
		ID:         spaceID,
		BranchID:   branchID,
		Name:       name,
		Capacity:   capacity,
		HourlyRate: hourlyRate,
		Active:     active,
	}, nil
}

func (s *CommandReadStore) CustomerByID(ctx context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	var (
		customerID uuid.UUID
		name       string
		active     bool
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, name, active FROM customers WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&customerID, &name, &active)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read customer", err)
	}
	return &shared.CustomerSnapshot{ID: customerID, Name: name, Active: active}, nil
}

func (s *CommandReadStore) BranchExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM branches WHERE id = $1)`,
		pgconv.UUIDToPgtype(id),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check branch", err)
	}
	return exists, nil
}

const selectReservationSnapshot = `
SELECT id, space_id, branch_id, customer_id, status, total_amount
FROM reservations
WHERE id = $1
`

func (s *CommandReadStore) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		resID, spaceID, branchID, customerID uuid.UUID
		status                               string
		totalAmount                          decimal.Decimal
	)
	err := s.db.QueryRow(ctx, selectReservationSnapshot, pgconv.UUIDToPgtype(id)).
		Scan(&resID, &spaceID, &branchID, &customerID, &status, &totalAmount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation", err)
	}
	return &shared.ReservationSnapshot{
		ID:          resID,
		SpaceID:     spaceID,
		BranchID:    branchID,
		CustomerID:  customerID,
		Status:      status,
		TotalAmount: totalAmount,
	}, nil
}
