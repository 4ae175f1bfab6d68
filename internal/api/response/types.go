package response

import (
	"math"
	"time"

	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/services/catalog"
	"github.com/mcoot/leelawheel/internal/services/draw"
	"github.com/mcoot/leelawheel/internal/services/lock"
)

// Player represents a player in API responses
type Player struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Key       string `json:"key"`
}

// PlayerFromModel converts a normalized identity and its key
func PlayerFromModel(p model.PlayerIdentity, pk model.PlayerKey) Player {
	return Player{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Key:       pk.String(),
	}
}

// Quote represents a catalog quote with its display dates
type Quote struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Translated string `json:"translated,omitempty"`
	Date       string `json:"date"`
	DateEN     string `json:"date_en"`
	DateTH     string `json:"date_th"`
}

// QuoteFromModel converts a model.Quote at index i
func QuoteFromModel(i int, q model.Quote) Quote {
	return Quote{
		Index:      i,
		Text:       q.Quote,
		Translated: q.Translated,
		Date:       q.Date,
		DateEN:     catalog.FormatQuoteDate(q.Date, catalog.LangEN),
		DateTH:     catalog.FormatQuoteDate(q.Date, catalog.LangTH),
	}
}

// Lock represents a lock status
type Lock struct {
	State            string     `json:"state"`
	RemainingSeconds int        `json:"remaining_seconds"`
	Remaining        string     `json:"remaining,omitempty"`
	Until            *time.Time `json:"until,omitempty"`
}

// LockFromModel converts model.LockStatus
func LockFromModel(s model.LockStatus) Lock {
	l := Lock{State: string(s.State)}
	if s.IsLocked() {
		until := s.Until
		l.RemainingSeconds = int(math.Ceil(s.Remaining.Seconds()))
		l.Remaining = lock.FormatRemaining(s.Remaining)
		l.Until = &until
	}
	return l
}

// Result represents a drawn card
type Result struct {
	Quote      Quote     `json:"quote"`
	ImagePath  string    `json:"image_path"`
	PlayedAt   time.Time `json:"played_at"`
	PlayedAtEN string    `json:"played_at_en"`
	PlayedAtTH string    `json:"played_at_th"`
	Bypass     bool      `json:"bypass,omitempty"`
}

// ResultFromModel converts a SelectionResult and its quote. The played-at
// strings are rendered in loc.
func ResultFromModel(r model.SelectionResult, q model.Quote, loc *time.Location) Result {
	played := r.Timestamp.In(loc)
	return Result{
		Quote:      QuoteFromModel(r.QuoteIndex, q),
		ImagePath:  r.ImagePath,
		PlayedAt:   played,
		PlayedAtEN: catalog.FormatPlayedAt(played, catalog.LangEN),
		PlayedAtTH: catalog.FormatPlayedAt(played, catalog.LangTH),
		Bypass:     r.Bypass,
	}
}

// DrawResponse is the response for a successful draw
type DrawResponse struct {
	Player       Player `json:"player"`
	Result       Result `json:"result"`
	Lock         Lock   `json:"lock"`
	CardFilename string `json:"card_filename"`
}

// DrawResponseFromOutcome converts a draw.Outcome
func DrawResponseFromOutcome(o *draw.Outcome, loc *time.Location) DrawResponse {
	return DrawResponse{
		Player:       PlayerFromModel(o.Player, o.Key),
		Result:       ResultFromModel(o.Result, o.Quote, loc),
		Lock:         LockFromModel(o.Lock),
		CardFilename: o.CardFilename,
	}
}

// StatusResponse is the response for a player's status
type StatusResponse struct {
	Player   Player     `json:"player"`
	Lock     Lock       `json:"lock"`
	LastPlay *time.Time `json:"last_play,omitempty"`
	Restored *Result    `json:"restored,omitempty"`
}

// StatusResponseFromModel converts a draw.Status
func StatusResponseFromModel(s *draw.Status, loc *time.Location) StatusResponse {
	resp := StatusResponse{
		Player: PlayerFromModel(s.Player, s.Key),
		Lock:   LockFromModel(s.Lock),
	}
	if s.LastPlay != nil {
		last := s.LastPlay.In(loc)
		resp.LastPlay = &last
	}
	if s.Restored != nil && s.RestoredQuote != nil {
		r := ResultFromModel(*s.Restored, *s.RestoredQuote, loc)
		resp.Restored = &r
	}
	return resp
}

// HistoryEntry represents one shown quote
type HistoryEntry struct {
	QuoteIndex int       `json:"quote_index"`
	ShownAt    time.Time `json:"shown_at"`
}

// HistoryResponse is the response for a player's recent history
type HistoryResponse struct {
	Player  Player         `json:"player"`
	Entries []HistoryEntry `json:"entries"`
}

// HistoryResponseFromModel converts history entries
func HistoryResponseFromModel(p model.PlayerIdentity, entries []model.HistoryEntry) HistoryResponse {
	p = p.Normalized()
	resp := HistoryResponse{
		Player:  PlayerFromModel(p, model.NewPlayerKey(p)),
		Entries: make([]HistoryEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, HistoryEntry{QuoteIndex: e.Index, ShownAt: e.Timestamp})
	}
	return resp
}

// ConfigResponse represents the config. The API key itself is never returned.
type ConfigResponse struct {
	CooldownMinutes int  `json:"cooldown_minutes"`
	TestingMode     bool `json:"testing_mode"`
	DailyLock       bool `json:"daily_lock"`
	DevBypass       bool `json:"dev_bypass"`
	APIKeySet       bool `json:"api_key_set"`
}

// ConfigFromModel converts model.Config
func ConfigFromModel(c model.Config) ConfigResponse {
	return ConfigResponse{
		CooldownMinutes: c.CooldownMinutes,
		TestingMode:     c.TestingMode,
		DailyLock:       c.DailyLock,
		DevBypass:       c.DevBypass,
		APIKeySet:       c.APIKey != "",
	}
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status       string `json:"status"`
	CatalogReady bool   `json:"catalog_ready"`
	Quotes       int    `json:"quotes"`
	Images       int    `json:"images"`
}
