package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/leelawheel/internal/api/handler"
	apimiddleware "github.com/mcoot/leelawheel/internal/api/middleware"
	"github.com/mcoot/leelawheel/internal/middleware"
	"github.com/mcoot/leelawheel/internal/services/auth"
	"github.com/mcoot/leelawheel/internal/services/catalog"
	"github.com/mcoot/leelawheel/internal/services/draw"
	"github.com/mcoot/leelawheel/internal/services/settings"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	DrawController  *draw.Controller
	CatalogService  *catalog.Service
	SettingsService settings.ServiceInterface
	AuthService     *auth.Service
	// Location renders times in responses (optional, defaults to time.Local)
	Location *time.Location
	// HTTPMetrics instruments every route (optional)
	HTTPMetrics *middleware.HTTPMetrics
	// MetricsHandler is served on /metrics (optional)
	MetricsHandler http.Handler
	// DrawLimiter rate limits POST /draws per client (optional)
	DrawLimiter *middleware.RateLimiter
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID())
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Middleware())
	}

	// Create handlers
	healthHandler := handler.NewHealthHandler(cfg.CatalogService)
	drawHandler := handler.NewDrawHandler(cfg.DrawController, cfg.Location)
	configHandler := handler.NewConfigHandler(cfg.SettingsService)

	// Create middleware
	adminMiddleware := apimiddleware.Admin(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler).Methods(http.MethodGet)
	}

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	// Draw routes
	draws := api.PathPrefix("/draws").Subrouter()
	if cfg.DrawLimiter != nil {
		draws.Use(apimiddleware.RateLimit(cfg.DrawLimiter))
	}
	draws.HandleFunc("", drawHandler.Create).Methods(http.MethodPost)

	// Player lookups, keyed by first_name and last_name query parameters
	players := api.PathPrefix("/players").Subrouter()
	players.HandleFunc("/status", drawHandler.Status).Methods(http.MethodGet)
	players.HandleFunc("/history", drawHandler.History).Methods(http.MethodGet)
	players.HandleFunc("/countdown", drawHandler.Countdown).Methods(http.MethodGet)

	// Config routes (admin only)
	config := api.PathPrefix("/config").Subrouter()
	config.Use(adminMiddleware)
	config.HandleFunc("", configHandler.Get).Methods(http.MethodGet)
	config.HandleFunc("", configHandler.Update).Methods(http.MethodPut)

	return r
}
