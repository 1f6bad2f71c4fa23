package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docview/docs"
	"docview/internal/config"
	handlers "docview/internal/http/handler"
	"docview/internal/http/middleware"
	"docview/internal/logging"
	"docview/internal/otel"
	"docview/internal/pipeline"
	"docview/internal/reader"
	"docview/internal/service"
)

// @title Document Viewer API
// @version 1.0
// @description Parses text, word-processor, presentation and spreadsheet files into a normalized content model.
// @BasePath /
func main() {
	cfg := config.Load()
	loc := cfg.Location()
	logger := logging.New(os.Stdout, cfg.LogLevel, loc)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Error("tracing_init_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	var promMiddleware *middleware.PrometheusMiddleware
	if cfg.MetricsEnabled {
		pipelineMetrics, err := pipeline.NewMetrics(reg)
		if err != nil {
			logger.Error("metrics_init_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		opts = append(opts, pipeline.WithMetrics(pipelineMetrics))

		promMiddleware, err = middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			logger.Error("metrics_init_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	assembler := pipeline.NewAssembler(pipeline.NewValidator(cfg.Limits()), reader.Default(), opts...)
	viewer := service.NewViewerService(assembler, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitBytes,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(otelfiber.Middleware())
	if promMiddleware != nil {
		app.Use(promMiddleware.Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	handlers.RegisterRoutes(app, viewer, assembler.Limits(), cfg.ReadTimeout())

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
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", slog.String("addr", addr), slog.String("host", cfg.AppHost))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server_failed", slog.String("error", err.Error()))
		}
	case <-ctx.Done():
		logger.Info("server_stopping")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("server_shutdown_failed", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing_shutdown_failed", slog.String("error", err.Error()))
	}
}
