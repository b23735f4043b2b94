package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID             uuid.UUID       `json:"id"`
	SpaceID        uuid.UUID       `json:"space_id"`
	SpaceName      string          `json:"space_name"`
	BranchID       uuid.UUID       `json:"branch_id"`
	BranchName     string          `json:"branch_name"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	CheckInDate    string          `json:"check_in_date"`
	CheckOutDate   string          `json:"check_out_date"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	Occupancy      int32           `json:"occupancy"`
	Status         string          `json:"status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DepositPercent int32           `json:"deposit_percent"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ReservationListItem struct {
	ID           uuid.UUID       `json:"id"`
	SpaceID      uuid.UUID       `json:"space_id"`
	SpaceName    string          `json:"space_name"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	Occupancy    int32           `json:"occupancy"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

type PaymentView struct {
	ID            uuid.UUID       `json:"id"`
	ReservationID uuid.UUID       `json:"reservation_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Purpose       string          `json:"purpose"`
	Status        string          `json:"status"`
	ExternalRef   *string         `json:"external_ref,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PaymentListItem joins reservation, space, branch and customer context for
// reporting.
type PaymentListItem struct {
	ID            uuid.UUID       `json:"id"`
	ReservationID uuid.UUID       `json:"reservation_id"`
	SpaceID       uuid.UUID       `json:"space_id"`
	SpaceName     string          `json:"space_name"`
	BranchID      uuid.UUID       `json:"branch_id"`
	BranchName    string          `json:"branch_name"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Purpose       string          `json:"purpose"`
	Status        string          `json:"status"`
	ExternalRef   *string         `json:"external_ref,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PaymentFilter is a pure conjunction: every non-nil field must match.
type PaymentFilter struct {
	BranchID   *uuid.UUID
	SpaceID    *uuid.UUID
	CustomerID *uuid.UUID
	Status     *string
	Method     *string
	Purpose    *string
	From       *time.Time
	To         *time.Time
}

type SpaceView struct {
	ID         uuid.UUID       `json:"id"`
	BranchID   uuid.UUID       `json:"branch_id"`
	BranchName string          `json:"branch_name"`
	Name       string          `json:"name"`
	Capacity   int32           `json:"capacity"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type BranchView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Document  *string   `json:"document,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
