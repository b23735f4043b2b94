package request

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"space-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type CreateReservationRequest struct {
	SpaceID        string  `json:"space_id" binding:"required,uuid"`
	CustomerID     string  `json:"customer_id" binding:"required,uuid"`
	CheckInDate    string  `json:"check_in_date" binding:"required"`
	CheckOutDate   string  `json:"check_out_date" binding:"required"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	Occupancy      int     `json:"occupancy" binding:"required,min=1"`
	DepositPercent *int    `json:"deposit_percent" binding:"omitempty,min=0,max=100"`
	Notes          *string `json:"notes" binding:"omitempty,max=1000"`
}

func (r CreateReservationRequest) SpaceUUID() (uuid.UUID, error) {
	return uuid.Parse(r.SpaceID)
}

func (r CreateReservationRequest) CustomerUUID() (uuid.UUID, error) {
	return uuid.Parse(r.CustomerID)
}

// Span parses the date and time-of-day fields into the domain interval.
func (r CreateReservationRequest) Span() (reservation.Span, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckInDate)
	if err != nil {
		return reservation.Span{}, fmt.Errorf("check_in_date: %w", err)
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOutDate)
	if err != nil {
		return reservation.Span{}, fmt.Errorf("check_out_date: %w", err)
	}
	start, err := parseTimeOfDay(r.StartTime)
	if err != nil {
		return reservation.Span{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := parseTimeOfDay(r.EndTime)
	if err != nil {
		return reservation.Span{}, fmt.Errorf("end_time: %w", err)
	}
	return reservation.NewSpan(checkIn, checkOut, start, end)
}

func (r CreateReservationRequest) DepositPercentOrDefault() int {
	if r.DepositPercent == nil {
		return 0
	}
	return *r.DepositPercent
}

func (r CreateReservationRequest) NotesValue() reservation.Notes {
	if r.Notes == nil {
		return reservation.NewNotes("")
	}
	return reservation.NewNotes(*r.Notes)
}

// Hash is the canonical request fingerprint compared on idempotency-key
// replay.
func (r CreateReservationRequest) Hash() string {
	canonical := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d|%d|%s",
		r.SpaceID, r.CustomerID,
		r.CheckInDate, r.CheckOutDate,
		r.StartTime, r.EndTime,
		r.Occupancy, r.DepositPercentOrDefault(),
		valueOrEmpty(r.Notes),
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func parseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
