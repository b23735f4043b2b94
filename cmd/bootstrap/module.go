package bootstrap

import (
	"space-booking/cmd/bootstrap/components"
	"space-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// Module assembles the whole application graph.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			config.LoadConfig,
			NewLogger,
			NewDatabasePool,
		),
		components.PersistenceModule,
		components.UsecaseModule,
		components.HandlerModule,
	)
}
