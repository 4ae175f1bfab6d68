package storage

import (
	"fmt"

	"github.com/mcoot/leelawheel/internal/model"
)

// Key prefix shared by every backend
const keyPrefix = "leela"

// ConfigKey returns the key holding the persisted Config JSON
func ConfigKey() string {
	return fmt.Sprintf("%s:config:v2", keyPrefix)
}

// LastPlayKey returns the key holding a player's last play time in unix millis
func LastPlayKey(pk model.PlayerKey) string {
	return fmt.Sprintf("%s:lastPlay:%s", keyPrefix, pk)
}

// LastResultKey returns the key holding a player's last SelectionResult JSON
func LastResultKey(pk model.PlayerKey) string {
	return fmt.Sprintf("%s:lastResult:%s", keyPrefix, pk)
}

// HistoryKey returns the key holding a player's history entries JSON
func HistoryKey(pk model.PlayerKey) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, pk)
}
