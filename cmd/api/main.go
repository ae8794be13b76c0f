package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	analyticsCache "community-metrics-service/internal/analytics/adapters/cache"
	analyticsHttp "community-metrics-service/internal/analytics/adapters/http/fiber"
	analyticsUsecase "community-metrics-service/internal/analytics/core/usecase"

	"community-metrics-service/internal/messages/adapters/csvfile"
	"community-metrics-service/internal/messages/adapters/instrumented"
	messagesRepoPg "community-metrics-service/internal/messages/adapters/postgres"
	msgdomain "community-metrics-service/internal/messages/core/domain"
	"community-metrics-service/internal/messages/core/ports"
	messagesUsecase "community-metrics-service/internal/messages/core/usecase"

	"community-metrics-service/internal/platform/config"
	"community-metrics-service/internal/platform/httpmw"
	"community-metrics-service/internal/platform/logger"

	_ "community-metrics-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Snapshot source
	var source ports.SnapshotSourcePort
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		db, err := openPostgres(cfg.Postgres, logg)
		if err != nil {
			logg.Fatal("Failed to open postgres", zap.Error(err))
		}
		defer db.Close()

		source = messagesRepoPg.NewMessageRepository(messagesRepoPg.NewSQLDB(db))
	default:
		source = csvfile.NewSource(cfg.Source.CSVPath)
	}

	source, err = instrumented.NewSource(source, registry)
	if err != nil {
		logg.Fatal("Failed to register snapshot metrics", zap.Error(err))
	}

	// Usecases
	loadSnapshotUC := messagesUsecase.NewLoadSnapshotUseCase(source, logg)

	reports, err := analyticsCache.New(cfg.Cache.Size, cfg.Cache.TTL, registry)
	if err != nil {
		logg.Fatal("Failed to create report cache", zap.Error(err))
	}

	getActiveUsersUC := analyticsUsecase.NewGetActiveUsersUseCase(loadSnapshotUC, reports, logg)
	getChannelActivityUC := analyticsUsecase.NewGetChannelActivityUseCase(loadSnapshotUC, reports, logg)
	getRetentionUC := analyticsUsecase.NewGetRetentionUseCase(loadSnapshotUC, reports, logg)
	getUserGrowthUC := analyticsUsecase.NewGetUserGrowthUseCase(loadSnapshotUC, reports)

	// Warm the snapshot before serving
	if _, err := loadSnapshotUC.Execute(context.Background()); err != nil && !errors.Is(err, msgdomain.ErrEmptyInput) {
		logg.Warn("Initial snapshot load failed", zap.Error(err))
	}

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: cfg.Environment == "production",
	})

	httpMetrics, err := httpmw.NewMetrics(registry)
	if err != nil {
		logg.Fatal("Failed to register http metrics", zap.Error(err))
	}

	app.Use(httpmw.RequestID())
	app.Use(httpmw.AccessLog(logg))
	app.Use(httpMetrics.Handler())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/prometheus", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// analytics endpoints
	analyticsHandler := analyticsHttp.NewAnalyticsHandler(
		getActiveUsersUC,
		getChannelActivityUC,
		getRetentionUC,
		getUserGrowthUC,
		logg,
	)
	analyticsHandler.Register(app)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logg.Error("Fiber stopped", zap.Error(err))
		}
	}()

	logg.Info("Server started",
		zap.String("addr", cfg.Server.Addr),
		zap.String("source", cfg.Source.Kind))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logg.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logg.Error("Fiber shutdown error", zap.Error(err))
	}

	logg.Info("Server exiting")
}

func openPostgres(cfg config.PostgresConfig, logg *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := messagesRepoPg.Migrate(db, logg); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
