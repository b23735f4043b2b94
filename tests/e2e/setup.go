//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/handler"
	"space-booking/internal/handler/api"
	"space-booking/internal/infra/db"
	"space-booking/internal/infra/readstore"
	"space-booking/internal/infra/uow"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/config"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresImage = "postgres:17-alpine"

var migrationFiles = []string{
	"001_initial_schema.sql",
}

// TestApp is a fully wired application over a disposable database container.
type TestApp struct {
	Engine *gin.Engine
	Pool   *pgxpool.Pool
}

func NewTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	cfg := config.NewTestConfig()
	cfg.DB = startPostgres(t, ctx)

	pool, err := db.NewPool(ctx, cfg.DB)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applyMigrations(t, ctx, pool)

	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	unitOfWork := uow.NewPostgresUnitOfWork(pool)
	reservationQueries := queries.NewReservationQueries(readstore.NewReservationReadStore(pool))
	paymentQueries := queries.NewPaymentQueries(readstore.NewPaymentReadStore(pool))
	catalogQueries := queries.NewCatalogQueries(readstore.NewCatalogReadStore(pool))

	factory := reservation.NewFactory(reservation.NewHourlyPriceCalculator())
	clk := clock.System()

	reservationCommands := commands.NewReservationCommands(unitOfWork, factory, reservationQueries, clk)
	paymentCommands := commands.NewPaymentCommands(unitOfWork, paymentQueries, clk)
	catalogCommands := commands.NewCatalogCommands(unitOfWork, catalogQueries)

	router := handler.NewRouter(
		cfg, logger,
		api.NewReservationHandler(reservationCommands, reservationQueries),
		api.NewPaymentHandler(paymentCommands, paymentQueries),
		api.NewCatalogHandler(catalogCommands, catalogQueries),
	)

	return &TestApp{Engine: router.Engine(), Pool: pool}
}

func startPostgres(t *testing.T, ctx context.Context) config.DBConfig {
	t.Helper()

	cfg := config.DBConfig{
		User:     "test",
		Password: "test",
		DBName:   "test_db",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     cfg.User,
			"POSTGRES_PASSWORD": cfg.Password,
			"POSTGRES_DB":       cfg.DBName,
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
				cfg.User, cfg.Password, host, port.Port(), cfg.DBName)
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg.Host = host
	cfg.Port = port.Port()
	return cfg
}

func applyMigrations(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()
	for _, file := range migrationFiles {
		sql, err := os.ReadFile(filepath.Join(projectRoot(), "migrations", file))
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "migration %s failed", file)
	}
}

func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}
