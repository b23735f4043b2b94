package response

import (
	"space-booking/internal/usecase/queries"
)

type ReservationListResponse struct {
	Reservations []*queries.ReservationListItem `json:"reservations"`
	Total        int                            `json:"total"`
}

func NewReservationListResponse(items []*queries.ReservationListItem) ReservationListResponse {
	return ReservationListResponse{Reservations: items, Total: len(items)}
}
