package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=pix card cash boleto"`
	Purpose     *string         `json:"purpose" binding:"omitempty,oneof=deposit balance"`
	ExternalRef *string         `json:"external_ref" binding:"omitempty,max=255"`
}

// PurposeOrDefault treats an omitted purpose as a balance payment.
func (r RegisterPaymentRequest) PurposeOrDefault() string {
	if r.Purpose == nil {
		return "balance"
	}
	return *r.Purpose
}

type ConfirmPaymentRequest struct {
	ExternalRef *string    `json:"external_ref" binding:"omitempty,max=255"`
	PaidAt      *time.Time `json:"paid_at"`
}
