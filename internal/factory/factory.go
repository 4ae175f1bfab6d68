package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/leelawheel/internal/dependencies/clock"
	"github.com/mcoot/leelawheel/internal/dependencies/random"
	"github.com/mcoot/leelawheel/internal/middleware"
	"github.com/mcoot/leelawheel/internal/services/auth"
	"github.com/mcoot/leelawheel/internal/services/catalog"
	"github.com/mcoot/leelawheel/internal/services/draw"
	"github.com/mcoot/leelawheel/internal/services/history"
	"github.com/mcoot/leelawheel/internal/services/lock"
	"github.com/mcoot/leelawheel/internal/services/selection"
	"github.com/mcoot/leelawheel/internal/services/session"
	"github.com/mcoot/leelawheel/internal/services/settings"
	"github.com/mcoot/leelawheel/internal/storage"
	"github.com/mcoot/leelawheel/internal/storage/memory"
	redisstorage "github.com/mcoot/leelawheel/internal/storage/redis"
	"github.com/mcoot/leelawheel/internal/storage/resilient"
	sqlstorage "github.com/mcoot/leelawheel/internal/storage/sql"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQL    = "sql"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService  *catalog.Service
	SettingsService *settings.Service
	HistoryService  *history.Service
	SessionService  *session.Service
	Selector        *selection.Selector
	Countdowns      *lock.Countdowns
	DrawController  *draw.Controller
	AuthService     *auth.Service

	// Metrics
	HTTPMetrics *middleware.HTTPMetrics
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sql")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DatabaseURL is a postgres URL or sqlite path (required if StorageType is "sql")
	DatabaseURL string
	// StorageRetry is how long a failed backend is bypassed before retrying
	StorageRetry time.Duration
	// DataDir holds the quote catalog and image manifest (optional)
	// If empty, the catalog must be loaded manually
	DataDir string
	// Selector configures image paths and bypass randomness
	// If zero value, defaults to selection.DefaultConfig()
	Selector selection.Config
	// Location decides calendar days and midnight. Nil means time.Local.
	Location *time.Location
	// AuthConfig holds the admin token hash (optional)
	AuthConfig auth.Config
	// CountdownInterval is the countdown tick period (optional)
	CountdownInterval time.Duration
	// Registerer receives the Prometheus collectors (optional)
	Registerer prometheus.Registerer
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.NewInLocation(cfg.Location)

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisCfg := *cfg.RedisConfig
		if err := redisCfg.Validate(); err != nil {
			return nil, err
		}
		store = resilient.Connect(func() (storage.Store, error) {
			return redisstorage.New(redisCfg)
		}, clk, cfg.StorageRetry, logger)
	case StorageTypeSQL:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is sql")
		}
		if err := sqlstorage.Validate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		dsn := cfg.DatabaseURL
		store = resilient.Connect(func() (storage.Store, error) {
			return sqlstorage.Open(dsn)
		}, clk, cfg.StorageRetry, logger)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sql'")
	}

	app := newWithDependencies(store, clk, random.New(), cfg, logger)

	app.SettingsService.Load(context.Background())
	if cfg.DataDir != "" {
		// A missing catalog is logged and leaves draws unavailable
		_ = app.CatalogService.LoadDir(cfg.DataDir)
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	selectorCfg := cfg.Selector
	if selectorCfg == (selection.Config{}) {
		selectorCfg = selection.DefaultConfig()
	}

	// Create services
	catalogService := catalog.New(logger)
	settingsService := settings.New(store, logger)
	historyService := history.New(store, clk, logger)
	sessionService := session.New(store, logger)
	selector := selection.New(selectorCfg, rnd, logger)
	countdowns := lock.NewCountdowns(cfg.CountdownInterval)
	drawController := draw.NewController(
		catalogService,
		settingsService,
		historyService,
		sessionService,
		selector,
		countdowns,
		clk,
		draw.NewMetrics(cfg.Registerer),
		logger,
	)
	authService := auth.New(cfg.AuthConfig, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		CatalogService:  catalogService,
		SettingsService: settingsService,
		HistoryService:  historyService,
		SessionService:  sessionService,
		Selector:        selector,
		Countdowns:      countdowns,
		DrawController:  drawController,
		AuthService:     authService,
		HTTPMetrics:     middleware.NewHTTPMetrics(cfg.Registerer),
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
