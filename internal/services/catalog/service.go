// Package catalog loads the quote and image catalog and provides the tooling
// that produces it.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mcoot/leelawheel/internal/model"
)

// Files read by LoadDir, in lookup order for quotes
const (
	TranslatedQuotesFile = "quotes_th.json"
	QuotesFile           = "quotes.json"
	ManifestFile         = "smjm-manifest.json"
)

// Service holds the loaded catalog. It is not ready until a non-empty quote
// list has been loaded; the catalog is immutable after that.
type Service struct {
	logger *slog.Logger

	mu      sync.RWMutex
	catalog *model.Catalog
}

// New creates an empty, not-ready catalog Service
func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// LoadDir loads quotes and the image manifest from dir. The translated quote
// file is preferred over the plain one. A missing manifest leaves the image
// list empty; missing or empty quotes leave the service not ready.
func (s *Service) LoadDir(dir string) error {
	quotes, source, err := loadQuotes(dir)
	if err != nil {
		s.logger.Error("quote catalog unavailable", slog.String("dir", dir), slog.String("error", err.Error()))
		return err
	}

	images, err := loadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		s.logger.Warn("image manifest unavailable, continuing without images",
			slog.String("dir", dir),
			slog.String("error", err.Error()),
		)
		images = nil
	}

	if err := s.Load(quotes, images); err != nil {
		return err
	}
	s.logger.Info("catalog loaded",
		slog.String("source", source),
		slog.Int("quotes", len(quotes)),
		slog.Int("images", len(images)),
	)
	return nil
}

// Load installs an in-memory catalog
func (s *Service) Load(quotes []model.Quote, images []string) error {
	if len(quotes) == 0 {
		return fmt.Errorf("%w: no quotes", model.ErrCatalogUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = &model.Catalog{
		Quotes: append([]model.Quote(nil), quotes...),
		Images: append([]string(nil), images...),
	}
	return nil
}

// Ready reports whether a catalog has been loaded
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog != nil
}

// Catalog returns the loaded catalog, or nil when not ready
func (s *Service) Catalog() *model.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *Service) Quotes() []model.Quote {
	c := s.Catalog()
	if c == nil {
		return nil
	}
	return c.Quotes
}

func (s *Service) Images() []string {
	c := s.Catalog()
	if c == nil {
		return nil
	}
	return c.Images
}

func loadQuotes(dir string) ([]model.Quote, string, error) {
	var lastErr error
	for _, name := range []string{TranslatedQuotesFile, QuotesFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			lastErr = err
			continue
		}

		var quotes []model.Quote
		if err := json.Unmarshal(data, &quotes); err != nil {
			lastErr = fmt.Errorf("parse %s: %w", name, err)
			continue
		}
		if len(quotes) == 0 {
			lastErr = fmt.Errorf("%s is empty", name)
			continue
		}
		return quotes, name, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no quote file found")
	}
	return nil, "", fmt.Errorf("%w: %w", model.ErrCatalogUnavailable, lastErr)
}

func loadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var images []string
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return images, nil
}

// WriteJSON writes v as indented JSON to path, as the catalog tools do for
// quotes.json and the image manifest.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
