package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	dogshelterserver "github.com/Apurer/go-gin-dog-shelter/go"

	dogsmemory "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/memory"
	dogsobs "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/observability"
	dogspostgres "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/persistence/postgres"
	dogssqlite "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/persistence/sqlite"
	dogsseed "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/seed"
	dogsapp "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/application"
	dogsports "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
	"github.com/Apurer/go-gin-dog-shelter/internal/platform/migrations"
	"github.com/Apurer/go-gin-dog-shelter/internal/platform/objectstore"
	platformobservability "github.com/Apurer/go-gin-dog-shelter/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-dog-shelter/internal/platform/postgres"
)

const serviceName = "dogshelter-api"

// store is what every dog backend offers the API process.
type store interface {
	dogsports.Repository
	dogsports.Seeder
}

// Run boots the dog shelter HTTP API with observability and the configured store wired.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:   serviceName,
		Environment:   cfg.Environment,
		TraceExporter: cfg.TraceExporter,
		OTLPEndpoint:  cfg.OTLPEndpoint,
		OTLPInsecure:  cfg.OTLPInsecure,
		LogLevel:      cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, cleanupRepo, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepo()

	if err := applySeed(ctx, cfg, repo, logger); err != nil {
		return err
	}

	dogService := dogsobs.New(
		dogsapp.NewService(repo),
		dogsobs.WithLogger(logger),
		dogsobs.WithTracer(instruments.Tracer("internal.dogs.application")),
		dogsobs.WithMeter(instruments.Meter("internal.dogs.application")),
	)

	router, err := NewRouter(dogService, instruments.MetricsCollector("dogshelter"))
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	addr := ":" + cfg.Port
	logger.Info("dog shelter API listening", slog.String("addr", addr), slog.String("store", cfg.Store))
	if err := router.Run(addr); err != nil {
		logger.Error("dog shelter API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewRouter builds the instrumented gin engine serving the dog API.
// Extra collectors are served on /metrics next to the HTTP metrics.
func NewRouter(service dogsports.Service, collectors ...prometheus.Collector) (*gin.Engine, error) {
	metrics := platformobservability.NewHTTPMetrics("dogshelter")
	if err := metrics.Register(collectors...); err != nil {
		return nil, err
	}
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		platformobservability.RequestID(),
		metrics.Middleware(),
	)
	engine.GET("/metrics", metrics.Handler())
	return dogshelterserver.NewRouterWithGinEngine(engine, dogshelterserver.ApiHandleFunctions{
		DogAPI: dogshelterserver.NewDogAPI(service),
	}), nil
}

func buildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (store, func(), error) {
	switch cfg.Store {
	case StorePostgres:
		repo, cleanup := buildPostgresRepository(ctx, cfg.PostgresDSN, logger)
		return repo, cleanup, nil
	case StoreSQLite:
		repo, err := dogssqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("dog repository configured with sqlite", slog.String("path", cfg.SQLitePath))
		return repo, func() { _ = repo.Close() }, nil
	default:
		logger.Info("dog repository configured in memory")
		return dogsmemory.NewRepository(), func() {}, nil
	}
}

// buildPostgresRepository falls back to memory so the API still boots without a database.
func buildPostgresRepository(ctx context.Context, dsn string, logger *slog.Logger) (store, func()) {
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory dog repository")
		return dogsmemory.NewRepository(), func() {}
	}
	db, closeDB, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return dogsmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		_ = closeDB()
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		return dogsmemory.NewRepository(), func() {}
	}
	logger.Info("dog repository configured with postgres")
	return dogspostgres.NewRepository(db), func() { _ = closeDB() }
}

func applySeed(ctx context.Context, cfg Config, seeder dogsports.Seeder, logger *slog.Logger) error {
	path := cfg.SeedFile
	if path == "" {
		return nil
	}
	var (
		n   int
		err error
	)
	if objectstore.IsURI(path) {
		n, err = loadRemoteSeed(ctx, cfg, seeder)
	} else {
		n, err = dogsseed.LoadFile(ctx, path, seeder)
	}
	switch {
	case errors.Is(err, dogsports.ErrDuplicateID):
		// Insert is atomic, so a clash means an earlier boot already loaded this fixture.
		logger.Info("dog fixtures already present, skipping seed", slog.String("path", path), slog.String("reason", err.Error()))
		return nil
	case err != nil:
		return fmt.Errorf("seed dogs from %s: %w", path, err)
	}
	logger.Info("dog fixtures loaded", slog.String("path", path), slog.Int("dogs", n))
	return nil
}

func loadRemoteSeed(ctx context.Context, cfg Config, seeder dogsports.Seeder) (int, error) {
	reader, err := objectstore.New(ctx, objectstore.Config{
		Region:    cfg.SeedS3Region,
		Endpoint:  cfg.SeedS3Endpoint,
		PathStyle: cfg.SeedS3PathStyle,
	})
	if err != nil {
		return 0, err
	}
	body, err := reader.Open(ctx, cfg.SeedFile)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()
	return dogsseed.Load(ctx, body, seeder)
}
