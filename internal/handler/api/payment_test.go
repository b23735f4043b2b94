//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"space-booking/internal/domain/payment"
	"space-booking/internal/handler/api"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"
	mock_usecase "space-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerSuite struct {
	suite.Suite
	commands *mock_usecase.MockPaymentCommands
	queries  *mock_usecase.MockPaymentQueries
	engine   *gin.Engine
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerSuite))
}

func (s *PaymentHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.commands = mock_usecase.NewMockPaymentCommands(ctrl)
	s.queries = mock_usecase.NewMockPaymentQueries(ctrl)
	handler := api.NewPaymentHandler(s.commands, s.queries)
	s.engine = newTestEngine(nil, handler, nil)
}

func (s *PaymentHandlerSuite) TestRegisterReturns201() {
	reservationID := uuid.New()
	s.commands.EXPECT().
		Register(gomock.Any(), reservationID, gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, in commands.RegisterPaymentInput) (*queries.PaymentView, error) {
			s.Equal("pix", in.Method)
			s.Equal("balance", in.Purpose)
			s.True(in.Amount.Equal(decimal.RequireFromString("80.00")))
			return &queries.PaymentView{ID: uuid.New(), Status: "pending"}, nil
		})

	rec := doJSON(s.T(), s.engine, http.MethodPost,
		"/api/reservations/"+reservationID.String()+"/payments",
		map[string]any{"amount": "80.00", "method": "pix"}, nil)

	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *PaymentHandlerSuite) TestRegisterUnknownMethod() {
	rec := doJSON(s.T(), s.engine, http.MethodPost,
		"/api/reservations/"+uuid.New().String()+"/payments",
		map[string]any{"amount": "80.00", "method": "cheque"}, nil)
	assertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST")
}

func (s *PaymentHandlerSuite) TestRegisterExceedsRemainingCarriesRemaining() {
	amtErr := &payment.AmountExceedsRemainingError{Remaining: decimal.RequireFromString("50.00")}
	s.commands.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errs.Mark(amtErr, errs.ErrAmountExceedsRemaining))

	rec := doJSON(s.T(), s.engine, http.MethodPost,
		"/api/reservations/"+uuid.New().String()+"/payments",
		map[string]any{"amount": "60.00", "method": "card"}, nil)

	body := assertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "AMOUNT_EXCEEDS_REMAINING")
	details := body["details"].(map[string]any)
	s.Equal("50", details["remaining"])
}

func (s *PaymentHandlerSuite) TestConfirmReturnsPaidView() {
	paymentID := uuid.New()
	s.commands.EXPECT().Confirm(gomock.Any(), paymentID, gomock.Any()).
		Return(&queries.PaymentView{ID: paymentID, Status: "paid"}, nil)

	rec := doJSON(s.T(), s.engine, http.MethodPost,
		"/api/payments/"+paymentID.String()+"/confirm", map[string]any{}, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := decodeBody(s.T(), rec)
	s.Equal("paid", body["status"])
}

func (s *PaymentHandlerSuite) TestConfirmNotFound() {
	paymentID := uuid.New()
	s.commands.EXPECT().Confirm(gomock.Any(), paymentID, gomock.Any()).
		Return(nil, errs.Mark(errs.New("missing"), errs.ErrPaymentNotFound))

	rec := doJSON(s.T(), s.engine, http.MethodPost,
		"/api/payments/"+paymentID.String()+"/confirm", map[string]any{}, nil)
	assertErrorCode(s.T(), rec, http.StatusNotFound, "PAYMENT_NOT_FOUND")
}

func (s *PaymentHandlerSuite) TestRemoveReturns204() {
	paymentID := uuid.New()
	s.commands.EXPECT().Remove(gomock.Any(), paymentID).Return(nil)

	rec := doJSON(s.T(), s.engine, http.MethodDelete, "/api/payments/"+paymentID.String(), nil, nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *PaymentHandlerSuite) TestRemovePaidPayment() {
	paymentID := uuid.New()
	s.commands.EXPECT().Remove(gomock.Any(), paymentID).
		Return(errs.Mark(errs.New("not pending"), errs.ErrCannotDeletePaidPayment))

	rec := doJSON(s.T(), s.engine, http.MethodDelete, "/api/payments/"+paymentID.String(), nil, nil)
	assertErrorCode(s.T(), rec, http.StatusConflict, "PAYMENT_NOT_PENDING")
}

func (s *PaymentHandlerSuite) TestListPassesFilters() {
	branchID := uuid.New()
	s.queries.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, filter queries.PaymentFilter) ([]*queries.PaymentListItem, error) {
			s.Require().NotNil(filter.BranchID)
			s.Equal(branchID, *filter.BranchID)
			s.Require().NotNil(filter.Status)
			s.Equal("paid", *filter.Status)
			s.Nil(filter.SpaceID)
			return []*queries.PaymentListItem{{ID: uuid.New(), Status: "paid"}}, nil
		})

	rec := doJSON(s.T(), s.engine, http.MethodGet,
		"/api/payments?branch_id="+branchID.String()+"&status=paid", nil, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := decodeBody(s.T(), rec)
	s.Equal(float64(1), body["total"])
}

func (s *PaymentHandlerSuite) TestListRejectsBadStatus() {
	rec := doJSON(s.T(), s.engine, http.MethodGet, "/api/payments?status=settled", nil, nil)
	assertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_FILTER")
}

func (s *PaymentHandlerSuite) TestListRejectsBadUUIDFilter() {
	rec := doJSON(s.T(), s.engine, http.MethodGet, "/api/payments?space_id=abc", nil, nil)
	assertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_FILTER")
}
