//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"space-booking/internal/handler/api"
	"space-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestEngine(
	reservations *api.ReservationHandler,
	payments *api.PaymentHandler,
	catalog *api.CatalogHandler,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine := gin.New()
	engine.Use(middleware.ErrorHandler(logger))

	group := engine.Group("/api")
	if reservations != nil {
		group.POST("/reservations", reservations.Create)
		group.GET("/reservations/:id", reservations.GetByID)
		group.POST("/reservations/:id/cancel", reservations.Cancel)
		group.GET("/spaces/:id/reservations", reservations.ListBySpace)
	}
	if payments != nil {
		group.POST("/reservations/:id/payments", payments.Register)
		group.POST("/payments/:id/confirm", payments.Confirm)
		group.DELETE("/payments/:id", payments.Remove)
		group.GET("/payments", payments.List)
	}
	if catalog != nil {
		group.POST("/branches", catalog.CreateBranch)
		group.POST("/spaces", catalog.CreateSpace)
		group.POST("/customers", catalog.CreateCustomer)
	}
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) map[string]any {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, code, body["code"])
	return body
}
