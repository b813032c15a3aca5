package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ad-widget/internal/config"
	"ad-widget/internal/delivery/router"
	"ad-widget/internal/infrastructure/display"
	"ad-widget/internal/infrastructure/metrics"
	"ad-widget/internal/render"
	"ad-widget/internal/repository"
	"ad-widget/internal/service"
	"ad-widget/pkg/logger"
	"ad-widget/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func main() {
	cfg := config.MustLoadConfig()

	loggers, err := logger.SetupLogger(cfg.Logger.Level)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	loggers.InfoLogger.Info("Logger initialized")

	backendURL, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		loggers.ErrorLogger.Error("Invalid backend URL", utils.Err(err))
		os.Exit(1)
	}

	tracerProvider := setupTracer(cfg, loggers)
	defer shutdownTracer(tracerProvider, loggers)

	handlerMetrics := metrics.NewHandlerMetrics(prometheus.DefaultRegisterer)
	serviceMetrics := metrics.NewServiceMetrics(prometheus.DefaultRegisterer)
	repositoryMetrics := metrics.NewRepositoryMetrics(prometheus.DefaultRegisterer)
	loggers.InfoLogger.Info("Prometheus metrics initialized")

	adRepo := repository.NewHTTPAdRepository(repository.Options{
		BaseURL:       cfg.Backend.BaseURL,
		SessionCookie: cfg.Backend.SessionCookie,
		Timeout:       cfg.Backend.Timeout,
	}, repositoryMetrics)

	page := display.NewPage(render.Options{
		ImagePrefix: cfg.Widget.ImagePrefix,
		DismissPath: render.DefaultDismissPath,
	})

	adService := service.NewAdDisplayService(adRepo, page, loggers, serviceMetrics, service.Options{
		MaxCards:     cfg.Widget.MaxCards,
		DismissDelay: cfg.Widget.DismissDelay,
	})
	loggers.InfoLogger.Info("Service and repository layers initialized", "backend", cfg.Backend.BaseURL)

	r := chi.NewRouter()
	router.SetupWidgetRoutes(r, adService, page, loggers, handlerMetrics, backendURL)
	loggers.InfoLogger.Info("Router and routes initialized")

	r.Handle("/metrics", handlerMetrics.HTTPHandler(prometheus.DefaultGatherer))

	server := startServer(cfg, r, loggers)

	go adService.Initialize(context.Background())

	waitForShutdown(server, loggers)
}

func setupTracer(cfg *config.Config, loggers *logger.Loggers) *sdktrace.TracerProvider {
	tracerProvider, err := metrics.InitTracer(
		cfg.Tracing.ServiceName,
		cfg.Tracing.Environment,
		cfg.Tracing.Version,
		cfg.Tracing.Endpoint,
	)
	if err != nil {
		loggers.ErrorLogger.Error("Failed to initialize tracer", utils.Err(err))
		os.Exit(1)
	}
	if tracerProvider == nil {
		loggers.InfoLogger.Info("Tracing disabled, no endpoint configured")
		return nil
	}
	loggers.InfoLogger.Info("OpenTelemetry Tracer initialized")
	return tracerProvider
}

func shutdownTracer(tp *sdktrace.TracerProvider, loggers *logger.Loggers) {
	if tp == nil {
		return
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		loggers.ErrorLogger.Error("Failed to shut down tracer provider", utils.Err(err))
	}
}

func startServer(cfg *config.Config, handler http.Handler, loggers *logger.Loggers) *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.Timeout,
		WriteTimeout: cfg.HTTP.Timeout,
	}

	go func() {
		loggers.InfoLogger.Info("Starting server", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggers.ErrorLogger.Error("Failed to start server", utils.Err(err))
			os.Exit(1)
		}
	}()

	return server
}

func waitForShutdown(server *http.Server, loggers *logger.Loggers) {
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	<-shutdownCh
	loggers.InfoLogger.Info("Shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		loggers.ErrorLogger.Error("Server forced to shutdown", utils.Err(err))
	} else {
		loggers.InfoLogger.Info("Server shutdown gracefully")
	}
}
