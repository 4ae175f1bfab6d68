package model

import "errors"

// DefaultCooldownMinutes applies when no cooldown has been configured
const DefaultCooldownMinutes = 1

// Config controls replay restrictions. It is passed by value into the lock
// machine and selector.
type Config struct {
	CooldownMinutes int    `json:"cooldownMin"`
	TestingMode     bool   `json:"testingMode"`
	DailyLock       bool   `json:"dailyLock"`
	DevBypass       bool   `json:"devBypass"`
	APIKey          string `json:"apiKey"`
}

// DefaultConfig returns the safe defaults used when nothing valid is stored
func DefaultConfig() Config {
	return Config{
		CooldownMinutes: DefaultCooldownMinutes,
		TestingMode:     false,
		DailyLock:       true,
		DevBypass:       false,
	}
}

// Validate rejects values an operator should never be able to save
func (c Config) Validate() error {
	if c.CooldownMinutes < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("cooldown minutes must not be negative"))
	}
	return nil
}
