package request

import (
	"net/http"

	"github.com/mcoot/leelawheel/internal/model"
)

// DrawRequest is the request body for drawing a card
type DrawRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Player returns the identity named by the request
func (r DrawRequest) Player() model.PlayerIdentity {
	return model.PlayerIdentity{FirstName: r.FirstName, LastName: r.LastName}
}

// PlayerFromQuery reads first_name and last_name query parameters
func PlayerFromQuery(r *http.Request) model.PlayerIdentity {
	q := r.URL.Query()
	return model.PlayerIdentity{
		FirstName: q.Get("first_name"),
		LastName:  q.Get("last_name"),
	}
}

// UpdateConfigRequest is the request body for changing the config. Absent
// fields keep their current value.
type UpdateConfigRequest struct {
	CooldownMinutes *int    `json:"cooldown_minutes,omitempty"`
	TestingMode     *bool   `json:"testing_mode,omitempty"`
	DailyLock       *bool   `json:"daily_lock,omitempty"`
	DevBypass       *bool   `json:"dev_bypass,omitempty"`
	APIKey          *string `json:"api_key,omitempty"`
}

// Apply returns cfg with the request's fields applied
func (r UpdateConfigRequest) Apply(cfg model.Config) model.Config {
	if r.CooldownMinutes != nil {
		cfg.CooldownMinutes = *r.CooldownMinutes
	}
	if r.TestingMode != nil {
		cfg.TestingMode = *r.TestingMode
	}
	if r.DailyLock != nil {
		cfg.DailyLock = *r.DailyLock
	}
	if r.DevBypass != nil {
		cfg.DevBypass = *r.DevBypass
	}
	if r.APIKey != nil {
		cfg.APIKey = *r.APIKey
	}
	return cfg
}
