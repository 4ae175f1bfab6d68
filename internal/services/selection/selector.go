package selection

import (
	"log/slog"
	"time"

	"github.com/mcoot/leelawheel/internal/dependencies/random"
	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/services/history"
)

// ImageSlotOffset shifts the image slot away from the quote slot
const ImageSlotOffset = 7

// Config holds configuration for the Selector
type Config struct {
	// ImageBase is prepended to image filenames
	ImageBase string
	// FallbackImage is used for every draw when the image catalog is empty
	FallbackImage string
	// HardwareRandom makes bypass draws use the injected Random source
	// instead of a seed derived from the name and time
	HardwareRandom bool
}

// DefaultConfig returns the default Selector configuration
func DefaultConfig() Config {
	return Config{
		ImageBase:     "./assets/smjm/",
		FallbackImage: "./assets/img/hero.jpg",
	}
}

// Request is everything one draw depends on
type Request struct {
	Player  model.PlayerIdentity
	Now     time.Time
	Catalog *model.Catalog
	History []model.HistoryEntry
	Config  model.Config
}

// Selector picks the quote and image for a draw. It performs no I/O.
type Selector struct {
	cfg    Config
	random random.Random
	logger *slog.Logger
}

// New creates a new Selector
func New(cfg Config, random random.Random, logger *slog.Logger) *Selector {
	return &Selector{
		cfg:    cfg,
		random: random,
		logger: logger,
	}
}

// Select computes the result for req. The quote comes from the player's slot
// in today's permutation, moved off recently shown quotes where possible.
// The image uses the same day permutation scheme plus a per-draw jitter.
func (s *Selector) Select(req Request) (model.SelectionResult, error) {
	nq := req.Catalog.QuoteCount()
	if nq == 0 {
		return model.SelectionResult{}, model.ErrCatalogUnavailable
	}

	if req.Config.DevBypass {
		return s.selectBypass(req), nil
	}

	day := DayString(req.Now)
	quotePerm := DailyPermutation(nq, day)
	base := quotePerm[NameSlot(nq, req.Player)]
	quoteIndex := history.PickNonRepeating(base, quotePerm, req.History)

	if quoteIndex != base {
		s.logger.Debug("quote moved off recent history",
			slog.Int("base", base),
			slog.Int("chosen", quoteIndex),
		)
	}

	return model.SelectionResult{
		QuoteIndex: quoteIndex,
		ImagePath:  s.imagePath(req, day),
		Timestamp:  req.Now,
	}, nil
}

func (s *Selector) imagePath(req Request, day string) string {
	ni := req.Catalog.ImageCount()
	if ni == 0 {
		return s.cfg.FallbackImage
	}
	imagePerm := DailyPermutation(ni, day)
	jitter := int(req.Now.UnixMilli() % int64(ni))
	pos := (NameSlot(ni, req.Player) + ImageSlotOffset + jitter) % ni
	if pos < 0 {
		pos += ni
	}
	return s.cfg.ImageBase + req.Catalog.Images[imagePerm[pos]]
}

// selectBypass ignores the name slot, the day and the history
func (s *Selector) selectBypass(req Request) model.SelectionResult {
	nq := req.Catalog.QuoteCount()
	ni := req.Catalog.ImageCount()

	var quoteIndex, imageIndex int
	if s.cfg.HardwareRandom {
		quoteIndex = s.random.Intn(nq)
		imageIndex = s.random.Intn(ni)
	} else {
		seed := MakeSeed(req.Player.FirstName, req.Player.LastName, req.Now.UnixMilli())
		quoteIndex = NewMulberry32(seed).Intn(nq)
		imageIndex = NewMulberry32(seed + 1).Intn(ni)
	}

	imagePath := s.cfg.FallbackImage
	if ni > 0 {
		imagePath = s.cfg.ImageBase + req.Catalog.Images[imageIndex]
	}

	return model.SelectionResult{
		QuoteIndex: quoteIndex,
		ImagePath:  imagePath,
		Timestamp:  req.Now,
		Bypass:     true,
	}
}
