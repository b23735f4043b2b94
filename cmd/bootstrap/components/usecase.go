package components

import (
	"space-booking/internal/domain/reservation"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

// UsecaseModule wires the command and query services plus the domain policies
// they depend on.
var UsecaseModule = fx.Options(
	fx.Provide(
		clock.System,
		fx.Annotate(
			reservation.NewHourlyPriceCalculator,
			fx.As(new(reservation.PriceCalculator)),
		),
		reservation.NewFactory,

		queries.NewReservationQueries,
		queries.NewPaymentQueries,
		queries.NewCatalogQueries,

		commands.NewReservationCommands,
		commands.NewPaymentCommands,
		commands.NewCatalogCommands,
	),
)
