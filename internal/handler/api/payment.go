package api

import (
	"net/http"
	"time"

	"space-booking/internal/domain/payment"
	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/handler/dto/response"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	commands commands.PaymentCommands
	queries  queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, qrs queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{commands: cmds, queries: qrs}
}

func (h *PaymentHandler) Register(c *gin.Context) {
	reservationID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	view, err := h.commands.Register(c.Request.Context(), reservationID, commands.RegisterPaymentInput{
		Amount:      req.Amount,
		Method:      req.Method,
		Purpose:     req.PurposeOrDefault(),
		ExternalRef: req.ExternalRef,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	paymentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	view, err := h.commands.Confirm(c.Request.Context(), paymentID, commands.ConfirmPaymentInput{
		ExternalRef: req.ExternalRef,
		PaidAt:      req.PaidAt,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PaymentHandler) Remove(c *gin.Context) {
	paymentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.commands.Remove(c.Request.Context(), paymentID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List filters payments by any combination of branch, space, customer,
// status, method, purpose and creation period.
func (h *PaymentHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	items, err := h.queries.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response.NewPaymentListResponse(items))
}

func (h *PaymentHandler) parseFilter(c *gin.Context) (queries.PaymentFilter, bool) {
	var filter queries.PaymentFilter

	for param, target := range map[string]**uuid.UUID{
		"branch_id":   &filter.BranchID,
		"space_id":    &filter.SpaceID,
		"customer_id": &filter.CustomerID,
	} {
		if raw := c.Query(param); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_FILTER", "invalid "+param+" filter")
				return queries.PaymentFilter{}, false
			}
			*target = &id
		}
	}

	if raw := c.Query("status"); raw != "" {
		if !payment.Status(raw).IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_FILTER", "invalid status filter")
			return queries.PaymentFilter{}, false
		}
		filter.Status = &raw
	}
	if raw := c.Query("method"); raw != "" {
		if !payment.Method(raw).IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_FILTER", "invalid method filter")
			return queries.PaymentFilter{}, false
		}
		filter.Method = &raw
	}
	if raw := c.Query("purpose"); raw != "" {
		if !payment.Purpose(raw).IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_FILTER", "invalid purpose filter")
			return queries.PaymentFilter{}, false
		}
		filter.Purpose = &raw
	}

	for param, target := range map[string]**time.Time{
		"from": &filter.From,
		"to":   &filter.To,
	} {
		if raw := c.Query(param); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_FILTER", param+" must be RFC3339")
				return queries.PaymentFilter{}, false
			}
			*target = &t
		}
	}

	return filter, true
}
