package handler

import (
	"log/slog"
	"net/http"

	"space-booking/internal/handler/api"
	"space-booking/internal/handler/middleware"
	"space-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(
	cfg config.Config,
	logger *slog.Logger,
	reservations *api.ReservationHandler,
	payments *api.PaymentHandler,
	catalog *api.CatalogHandler,
) *Router {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(logger),
		middleware.CORS(cfg.CORS),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addRoutes(engine.Group("/api"), collectRoutes(reservations, payments, catalog))

	return &Router{engine: engine}
}

func collectRoutes(
	reservations *api.ReservationHandler,
	payments *api.PaymentHandler,
	catalog *api.CatalogHandler,
) []route {
	return []route{
		{http.MethodPost, "/reservations", reservations.Create},
		{http.MethodGet, "/reservations/:id", reservations.GetByID},
		{http.MethodPost, "/reservations/:id/cancel", reservations.Cancel},
		{http.MethodPost, "/reservations/:id/payments", payments.Register},
		{http.MethodGet, "/spaces/:id/reservations", reservations.ListBySpace},

		{http.MethodPost, "/payments/:id/confirm", payments.Confirm},
		{http.MethodDelete, "/payments/:id", payments.Remove},
		{http.MethodGet, "/payments", payments.List},

		{http.MethodPost, "/branches", catalog.CreateBranch},
		{http.MethodGet, "/branches", catalog.ListBranches},
		{http.MethodPost, "/spaces", catalog.CreateSpace},
		{http.MethodGet, "/spaces", catalog.ListSpaces},
		{http.MethodGet, "/spaces/:id", catalog.GetSpace},
		{http.MethodPost, "/customers", catalog.CreateCustomer},
		{http.MethodGet, "/customers", catalog.ListCustomers},
		{http.MethodGet, "/customers/:id", catalog.GetCustomer},
	}
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		group.Handle(r.method, r.path, r.handler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
