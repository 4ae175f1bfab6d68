package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerIdentityValidate(t *testing.T) {
	require.NoError(t, PlayerIdentity{FirstName: " Alice ", LastName: "Smith"}.Validate())
	assert.ErrorIs(t, PlayerIdentity{FirstName: "Alice", LastName: "   "}.Validate(), ErrInvalidPlayer)
	assert.ErrorIs(t, PlayerIdentity{}.Validate(), ErrInvalidPlayer)
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "alice smith", PlayerIdentity{FirstName: "  ALICE", LastName: "Smith "}.CanonicalName())
}

func TestNewPlayerKey(t *testing.T) {
	alice := PlayerIdentity{FirstName: "Alice", LastName: "Smith"}
	assert.Equal(t, PlayerKey(-1849590173), NewPlayerKey(alice))
	assert.Equal(t, NewPlayerKey(alice), NewPlayerKey(PlayerIdentity{FirstName: " alice", LastName: "SMITH "}))
	assert.Equal(t, "-1849590173", NewPlayerKey(alice).String())
}

func TestNewPlayerKeyAstral(t *testing.T) {
	// Only the high surrogate of U+1F600 is hashed
	key := NewPlayerKey(PlayerIdentity{FirstName: "😀", LastName: "x"})
	assert.Equal(t, PlayerKey(53199189), key)
}
