package response

import (
	"space-booking/internal/usecase/queries"
)

type PaymentListResponse struct {
	Payments []*queries.PaymentListItem `json:"payments"`
	Total    int                        `json:"total"`
}

func NewPaymentListResponse(items []*queries.PaymentListItem) PaymentListResponse {
	return PaymentListResponse{Payments: items, Total: len(items)}
}
