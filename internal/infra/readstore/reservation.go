package readstore

import (
	"context"
	"fmt"
	"time"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// formatTimeOfDay renders an offset from midnight as HH:MM.
func formatTimeOfDay(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

type ReservationReadStore struct {
	db infra.DBTX
}

func NewReservationReadStore(db infra.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const selectReservationView = `
SELECT r.id, r.space_id, s.name, r.branch_id, b.name, r.customer_id, c.name,
       r.check_in_date, r.check_out_date, r.start_time, r.end_time,
       r.occupancy, r.status, r.total_amount, r.deposit_percent, r.notes,
       r.created_at, r.updated_at
FROM reservations r
JOIN spaces s ON s.id = r.space_id
JOIN branches b ON b.id = r.branch_id
JOIN customers c ON c.id = r.customer_id
WHERE r.id = $1
`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		resID, spaceID, branchID, customerID   uuid.UUID
		spaceName, branchName, customerName    string
		checkIn, checkOut                      pgtype.Date
		startTime, endTime                     pgtype.Time
		occupancy                              int32
		status                                 string
		totalAmount                            decimal.Decimal
		depositPercent                         int32
		notes                                  pgtype.Text
		createdAt, updatedAt                   pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, selectReservationView, pgconv.UUIDToPgtype(id)).Scan(
		&resID, &spaceID, &spaceName, &branchID, &branchName, &customerID, &customerName,
		&checkIn, &checkOut, &startTime, &endTime,
		&occupancy, &status, &totalAmount, &depositPercent, &notes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation view", err)
	}
	return &queries.ReservationView{
		ID:             resID,
		SpaceID:        spaceID,
		SpaceName:      spaceName,
		BranchID:       branchID,
		BranchName:     branchName,
		CustomerID:     customerID,
		CustomerName:   customerName,
		CheckInDate:    pgconv.DateFromPgtype(checkIn).Format(dateLayout),
		CheckOutDate:   pgconv.DateFromPgtype(checkOut).Format(dateLayout),
		StartTime:      formatTimeOfDay(pgconv.DurationFromPgTime(startTime)),
		EndTime:        formatTimeOfDay(pgconv.DurationFromPgTime(endTime)),
		Occupancy:      occupancy,
		Status:         status,
		TotalAmount:    totalAmount,
		DepositPercent: depositPercent,
		Notes:          pgconv.StringPtrFromPgtype(notes),
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:      pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

const selectReservationsBySpace = `
SELECT r.id, r.space_id, s.name, r.customer_id, c.name,
       r.check_in_date, r.check_out_date, r.start_time, r.end_time,
       r.occupancy, r.status, r.total_amount, r.created_at
FROM reservations r
JOIN spaces s ON s.id = r.space_id
JOIN customers c ON c.id = r.customer_id
WHERE r.space_id = $1
  AND ($2::date IS NULL OR (r.check_in_date <= $2 AND r.check_out_date >= $2))
ORDER BY r.check_in_date, r.start_time, r.id
`

func (s *ReservationReadStore) FindBySpace(ctx context.Context, spaceID uuid.UUID, onDate *time.Time) ([]*queries.ReservationListItem, error) {
	dateParam := pgtype.Date{Valid: false}
	if onDate != nil {
		dateParam = pgconv.DateToPgtype(*onDate)
	}

	rows, err := s.db.Query(ctx, selectReservationsBySpace, pgconv.UUIDToPgtype(spaceID), dateParam)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by space", err)
	}
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var (
			resID, spcID, customerID uuid.UUID
			spaceName, customerName  string
			checkIn, checkOut        pgtype.Date
			startTime, endTime       pgtype.Time
			occupancy                int32
			status                   string
			totalAmount              decimal.Decimal
			createdAt                pgtype.Timestamptz
		)
		if err := rows.Scan(
			&resID, &spcID, &spaceName, &customerID, &customerName,
			&checkIn, &checkOut, &startTime, &endTime,
			&occupancy, &status, &totalAmount, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		items = append(items, &queries.ReservationListItem{
			ID:           resID,
			SpaceID:      spcID,
			SpaceName:    spaceName,
			CustomerID:   customerID,
			CustomerName: customerName,
			CheckInDate:  pgconv.DateFromPgtype(checkIn).Format(dateLayout),
			CheckOutDate: pgconv.DateFromPgtype(checkOut).Format(dateLayout),
			StartTime:    formatTimeOfDay(pgconv.DurationFromPgTime(startTime)),
			EndTime:      formatTimeOfDay(pgconv.DurationFromPgTime(endTime)),
			Occupancy:    occupancy,
			Status:       status,
			TotalAmount:  totalAmount,
			CreatedAt:    pgconv.TimeFromPgtype(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return items, nil
}
