package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/storage"
)

var errMalformed = errors.New("malformed config")

// Service owns the process-wide Config. It is loaded once at startup and only
// changed through Save.
type Service struct {
	store  storage.Store
	logger *slog.Logger

	mu      sync.RWMutex
	current model.Config
}

// New creates a settings Service holding the defaults until Load is called
func New(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		current: model.DefaultConfig(),
	}
}

// Load reads the persisted config. Missing, unreadable or malformed config
// falls back to defaults; Load never fails.
func (s *Service) Load(ctx context.Context) model.Config {
	cfg := model.DefaultConfig()

	raw, found, err := s.store.Get(ctx, storage.ConfigKey())
	switch {
	case err != nil:
		s.logger.Warn("could not read config, using defaults", slog.String("error", err.Error()))
	case found:
		parsed, perr := Parse(raw)
		if perr != nil {
			s.logger.Warn("malformed config, using defaults", slog.String("error", perr.Error()))
		} else {
			cfg = parsed
		}
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()

	s.logger.Info("config loaded",
		slog.Int("cooldown_minutes", cfg.CooldownMinutes),
		slog.Bool("daily_lock", cfg.DailyLock),
		slog.Bool("testing_mode", cfg.TestingMode),
		slog.Bool("dev_bypass", cfg.DevBypass),
	)
	return cfg
}

// Current returns a copy of the active config
func (s *Service) Current() model.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save validates, persists and activates cfg
func (s *Service) Save(ctx context.Context, cfg model.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, storage.ConfigKey(), string(data)); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()

	s.logger.Info("config saved",
		slog.Int("cooldown_minutes", cfg.CooldownMinutes),
		slog.Bool("daily_lock", cfg.DailyLock),
		slog.Bool("testing_mode", cfg.TestingMode),
		slog.Bool("dev_bypass", cfg.DevBypass),
	)
	return nil
}

// Parse decodes persisted config leniently. The cooldown may be a number or
// a numeric string; testingMode and devBypass only count when literally true.
// Absent fields keep their defaults.
func Parse(raw string) (model.Config, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return model.Config{}, fmt.Errorf("%w: %w", errMalformed, err)
	}
	if fields == nil {
		return model.Config{}, errMalformed
	}

	cfg := model.DefaultConfig()

	if v, ok := fields["cooldownMin"]; ok {
		minutes, err := parseMinutes(v)
		if err != nil {
			return model.Config{}, err
		}
		cfg.CooldownMinutes = minutes
	}
	if v, ok := fields["dailyLock"]; ok {
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			cfg.DailyLock = b
		}
	}
	cfg.TestingMode = isTrue(fields["testingMode"])
	cfg.DevBypass = isTrue(fields["devBypass"])

	if v, ok := fields["apiKey"]; ok {
		var key string
		if err := json.Unmarshal(v, &key); err == nil {
			cfg.APIKey = key
		}
	}
	return cfg, nil
}

func parseMinutes(v json.RawMessage) (int, error) {
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		var str string
		if err := json.Unmarshal(v, &str); err != nil {
			return 0, fmt.Errorf("%w: cooldownMin is neither number nor string", errMalformed)
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: cooldownMin %q is not numeric", errMalformed, str)
		}
		n = parsed
	}
	if math.IsNaN(n) || n <= 0 {
		return 0, nil
	}
	if n > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(n), nil
}

func isTrue(v json.RawMessage) bool {
	if v == nil {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return false
	}
	return b
}

// ServiceInterface is the behavior other packages depend on
type ServiceInterface interface {
	Load(ctx context.Context) model.Config
	Current() model.Config
	Save(ctx context.Context, cfg model.Config) error
}

var _ ServiceInterface = (*Service)(nil)
