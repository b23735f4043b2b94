package components

import (
	"space-booking/internal/handler"
	"space-booking/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Options(
	fx.Provide(
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewCatalogHandler,
		handler.NewRouter,
	),
)
