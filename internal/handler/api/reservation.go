package api

import (
	"net/http"
	"time"

	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/handler/dto/response"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const listDateLayout = "2006-01-02"

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qrs queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{commands: cmds, queries: qrs}
}

// Create books a space. The Idempotency-Key header is mandatory; replaying a
// completed key returns the stored reservation with 200 instead of 201.
func (h *ReservationHandler) Create(c *gin.Context) {
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		_ = c.Error(errs.ErrIdempotencyKeyRequired)
		return
	}
	idempotencyKey, err := uuid.Parse(key)
	if err != nil {
		_ = c.Error(errs.Mark(err, errs.ErrIdempotencyKeyRequired))
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.commands.Create(c.Request.Context(), req, idempotencyKey)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, result.Reservation)
}

func (h *ReservationHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.commands.Cancel(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListBySpace returns a space's reservations. An optional date query
// parameter narrows the list to stays covering that day.
func (h *ReservationHandler) ListBySpace(c *gin.Context) {
	spaceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var onDate *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(listDateLayout, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_DATE", "date must be formatted as YYYY-MM-DD")
			return
		}
		onDate = &parsed
	}

	items, err := h.queries.ListBySpace(c.Request.Context(), spaceID, onDate)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response.NewReservationListResponse(items))
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
