package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sitecms/docs"
	"sitecms/internal/auth"
	"sitecms/internal/config"
	"sitecms/internal/database"
	"sitecms/internal/database/migration"
	handlers "sitecms/internal/http/handler"
	"sitecms/internal/http/middleware"
	"sitecms/internal/logger"
	"sitecms/internal/mailer"
	"sitecms/internal/otel"
	"sitecms/internal/revalidate"
	"sitecms/internal/storage"
)

// @title Site CMS API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	lggr, err := logger.New(cfg.LogLevel, loc)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lggr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, lggr)
	if err != nil {
		lggr.Fatal("tracing_init_failed", zap.Error(err))
	}

	// PostgreSQL pool via database/sql, wrapped by gorm for repositories
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		lggr.Fatal("db_connect_failed", zap.Error(err))
	}
	gdb, err := database.NewGorm(db, lggr, time.Duration(cfg.Database.SlowQueryThresholdMs)*time.Millisecond)
	if err != nil {
		lggr.Fatal("gorm_init_failed", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := migration.Run(ctx, gdb, lggr, cfg.Database.Host); err != nil {
			lggr.Fatal("db_migration_failed", zap.Error(err))
		}
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		lggr.Fatal("storage_init_failed", zap.Error(err))
	}

	provider, err := auth.NewGoTrue(cfg.Auth)
	if err != nil {
		lggr.Fatal("auth_provider_init_failed", zap.Error(err))
	}

	mail := mailer.New(cfg.SMTP, lggr)
	reval := revalidate.New(cfg.Revalidate, lggr)

	services := buildServices(cfg, gdb, objStore, provider, mail, reval, lggr)

	app := newApp(cfg, lggr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		lggr.Fatal("metrics_init_failed", zap.Error(err))
	}

	app.Use(otelfiber.Middleware())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
		AllowCredentials: cfg.CORSAllowOrigins != "*",
	}))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(lggr.Named("access")))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, services)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() {
		lggr.Info("server_starting", zap.String("addr", addr))
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			lggr.Error("server_failed", zap.Error(err))
		}
	case <-ctx.Done():
		lggr.Info("server_shutting_down")
	}

	timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		lggr.Error("server_shutdown_failed", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil && !errors.Is(err, context.Canceled) {
		lggr.Error("tracing_shutdown_failed", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		lggr.Error("db_close_failed", zap.Error(err))
	}
	lggr.Info("server_stopped")
}
