package readstore

import (
	"context"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type PaymentReadStore struct {
	db infra.DBTX
}

func NewPaymentReadStore(db infra.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: db}
}

const selectPaymentView = `
SELECT id, reservation_id, amount, method, purpose, status, external_ref, paid_at,
       created_at, updated_at
FROM payments
WHERE id = $1
`

func (s *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	var (
		payID, reservationID    uuid.UUID
		amount                  decimal.Decimal
		method, purpose, status string
		externalRef             pgtype.Text
		paidAt                  pgtype.Timestamptz
		createdAt, updatedAt    pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, selectPaymentView, pgconv.UUIDToPgtype(id)).Scan(
		&payID, &reservationID, &amount, &method, &purpose, &status,
		&externalRef, &paidAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read payment view", err)
	}
	return &queries.PaymentView{
		ID:            payID,
		ReservationID: reservationID,
		Amount:        amount,
		Method:        method,
		Purpose:       purpose,
		Status:        status,
		ExternalRef:   pgconv.StringPtrFromPgtype(externalRef),
		PaidAt:        pgconv.TimePtrFromPgtype(paidAt),
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:     pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

// searchPayments applies each filter only when its parameter is non-null, so
// a single statement serves every filter combination. Newest first, id as the
// deterministic tie-break.
const searchPayments = `
SELECT p.id, p.reservation_id, r.space_id, s.name, r.branch_id, b.name,
       r.customer_id, c.name,
       p.amount, p.method, p.purpose, p.status, p.external_ref, p.paid_at, p.created_at
FROM payments p
JOIN reservations r ON r.id = p.reservation_id
JOIN spaces s ON s.id = r.space_id
JOIN branches b ON b.id = r.branch_id
JOIN customers c ON c.id = r.customer_id
WHERE ($1::uuid IS NULL OR r.branch_id = $1)
  AND ($2::uuid IS NULL OR r.space_id = $2)
  AND ($3::uuid IS NULL OR r.customer_id = $3)
  AND ($4::text IS NULL OR p.status = $4)
  AND ($5::text IS NULL OR p.method = $5)
  AND ($6::text IS NULL OR p.purpose = $6)
  AND ($7::timestamptz IS NULL OR p.created_at >= $7)
  AND ($8::timestamptz IS NULL OR p.created_at < $8)
ORDER BY p.created_at DESC, p.id DESC
`

func (s *PaymentReadStore) Search(ctx context.Context, filter queries.PaymentFilter) ([]*queries.PaymentListItem, error) {
	rows, err := s.db.Query(ctx, searchPayments,
		pgconv.UUIDPtrToPgtype(filter.BranchID),
		pgconv.UUIDPtrToPgtype(filter.SpaceID),
		pgconv.UUIDPtrToPgtype(filter.CustomerID),
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.StringPtrToPgtype(filter.Method),
		pgconv.StringPtrToPgtype(filter.Purpose),
		pgconv.TimePtrToPgtype(filter.From),
		pgconv.TimePtrToPgtype(filter.To),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search payments", err)
	}
	defer rows.Close()

	items := make([]*queries.PaymentListItem, 0)
	for rows.Next() {
		var (
			payID, reservationID                uuid.UUID
			spaceID, branchID, customerID       uuid.UUID
			spaceName, branchName, customerName string
			amount                              decimal.Decimal
			method, purpose, status             string
			externalRef                         pgtype.Text
			paidAt                              pgtype.Timestamptz
			createdAt                           pgtype.Timestamptz
		)
		if err := rows.Scan(
			&payID, &reservationID, &spaceID, &spaceName, &branchID, &branchName,
			&customerID, &customerName,
			&amount, &method, &purpose, &status, &externalRef, &paidAt, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		items = append(items, &queries.PaymentListItem{
			ID:            payID,
			ReservationID: reservationID,
			SpaceID:       spaceID,
			SpaceName:     spaceName,
			BranchID:      branchID,
			BranchName:    branchName,
			CustomerID:    customerID,
			CustomerName:  customerName,
			Amount:        amount,
			Method:        method,
			Purpose:       purpose,
			Status:        status,
			ExternalRef:   pgconv.StringPtrFromPgtype(externalRef),
			PaidAt:        pgconv.TimePtrFromPgtype(paidAt),
			CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}
	return items, nil
}
