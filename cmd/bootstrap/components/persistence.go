package components

import (
	"space-booking/internal/infra/readstore"
	"space-booking/internal/infra/uow"
	"space-booking/internal/usecase/queries"
	"space-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule wires the unit of work and the pool-backed read stores.
var PersistenceModule = fx.Options(
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUnitOfWork,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			func(pool *pgxpool.Pool) *readstore.ReservationReadStore {
				return readstore.NewReservationReadStore(pool)
			},
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			func(pool *pgxpool.Pool) *readstore.PaymentReadStore {
				return readstore.NewPaymentReadStore(pool)
			},
			fx.As(new(queries.PaymentReadStore)),
		),
		fx.Annotate(
			func(pool *pgxpool.Pool) *readstore.CatalogReadStore {
				return readstore.NewCatalogReadStore(pool)
			},
			fx.As(new(queries.CatalogReadStore)),
		),
	),
)
