package middleware

import (
	"log/slog"
	"net/http"

	"space-booking/internal/domain/payment"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	sentinel error
	status   int
	code     string
}

// Ordered: the first sentinel the error matches wins.
var errorMappings = []errorMapping{
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "VALIDATION_FAILED"},

	{errs.ErrSpaceNotFound, http.StatusNotFound, "SPACE_NOT_FOUND"},
	{errs.ErrBranchNotFound, http.StatusNotFound, "BRANCH_NOT_FOUND"},
	{errs.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND"},
	{errs.ErrPaymentNotFound, http.StatusNotFound, "PAYMENT_NOT_FOUND"},

	{errs.ErrReservationConflict, http.StatusConflict, "RESERVATION_CONFLICT"},
	{errs.ErrDuplicateReservation, http.StatusConflict, "DUPLICATE_REQUEST"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "REQUEST_IN_PROGRESS"},
	{errs.ErrEmailAlreadyUsed, http.StatusConflict, "EMAIL_ALREADY_USED"},
	{errs.ErrCannotDeletePaidPayment, http.StatusConflict, "PAYMENT_NOT_PENDING"},

	{errs.ErrInvalidTimeRange, http.StatusUnprocessableEntity, "INVALID_TIME_RANGE"},
	{errs.ErrCapacityExceeded, http.StatusUnprocessableEntity, "CAPACITY_EXCEEDED"},
	{errs.ErrInvalidAmount, http.StatusUnprocessableEntity, "INVALID_AMOUNT"},
	{errs.ErrAmountExceedsRemaining, http.StatusUnprocessableEntity, "AMOUNT_EXCEEDS_REMAINING"},
}

// ErrorHandler maps usecase errors pushed via c.Error onto the HTTP error
// envelope. Unmapped errors become 500 with their stack logged.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		for _, m := range errorMappings {
			if errs.Is(err, m.sentinel) {
				respond(c, m.status, m.code, err)
				return
			}
		}

		logger.ErrorContext(c.Request.Context(), "unhandled error",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, 10)),
		)
		httperr.AbortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func respond(c *gin.Context, status int, code string, err error) {
	if details := errorDetails(err); details != nil {
		httperr.AbortWithDetails(c, status, code, err.Error(), details)
		return
	}
	httperr.AbortWithError(c, status, code, err.Error())
}

// errorDetails extracts the structured payload some domain errors carry.
func errorDetails(err error) any {
	var capErr *reservation.CapacityExceededError
	if errs.As(err, &capErr) {
		return gin.H{"capacity": capErr.Capacity, "requested": capErr.Requested}
	}
	var amtErr *payment.AmountExceedsRemainingError
	if errs.As(err, &amtErr) {
		return gin.H{"remaining": amtErr.Remaining.String()}
	}
	return nil
}
