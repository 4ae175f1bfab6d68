package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/leelawheel/internal/api"
	"github.com/mcoot/leelawheel/internal/factory"
	"github.com/mcoot/leelawheel/internal/middleware"
)

func main() {
	// A missing .env is fine; the real environment wins over it
	_ = godotenv.Load()

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	cfg.Factory.Logger = logger
	cfg.Factory.Registerer = prometheus.DefaultRegisterer

	// Create application factory
	app, err := factory.New(cfg.Factory)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	if !app.CatalogService.Ready() {
		logger.Warn("catalog not loaded, draws are unavailable", slog.String("data_dir", cfg.Factory.DataDir))
	}
	if !app.AuthService.Enabled() {
		logger.Warn("ADMIN_TOKEN_HASH not set, config endpoints are disabled")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		DrawController:  app.DrawController,
		CatalogService:  app.CatalogService,
		SettingsService: app.SettingsService,
		AuthService:     app.AuthService,
		Location:        cfg.Factory.Location,
		HTTPMetrics:     app.HTTPMetrics,
		MetricsHandler:  promhttp.Handler(),
		DrawLimiter:     middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst),
	})

	server := api.NewServer(router, api.ServerConfigFromPort(cfg.Port), logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
