package response

import (
	"space-booking/internal/usecase/queries"
)

type BranchListResponse struct {
	Branches []*queries.BranchView `json:"branches"`
	Total    int                   `json:"total"`
}

func NewBranchListResponse(items []*queries.BranchView) BranchListResponse {
	return BranchListResponse{Branches: items, Total: len(items)}
}

type SpaceListResponse struct {
	Spaces []*queries.SpaceView `json:"spaces"`
	Total  int                  `json:"total"`
}

func NewSpaceListResponse(items []*queries.SpaceView) SpaceListResponse {
	return SpaceListResponse{Spaces: items, Total: len(items)}
}

type CustomerListResponse struct {
	Customers []*queries.CustomerView `json:"customers"`
	Total     int                     `json:"total"`
}

func NewCustomerListResponse(items []*queries.CustomerView) CustomerListResponse {
	return CustomerListResponse{Customers: items, Total: len(items)}
}
