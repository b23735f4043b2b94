package request

import (
	"github.com/shopspring/decimal"
)

type CreateBranchRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type CreateSpaceRequest struct {
	BranchID   string          `json:"branch_id" binding:"required,uuid"`
	Name       string          `json:"name" binding:"required,max=255"`
	Capacity   int             `json:"capacity" binding:"required,min=1"`
	HourlyRate decimal.Decimal `json:"hourly_rate" binding:"required"`
}

type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Document *string `json:"document" binding:"omitempty,max=30"`
}
