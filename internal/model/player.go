package model

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlayerIdentity is the free-text name a player draws under
type PlayerIdentity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Normalized returns a copy with surrounding whitespace removed from both parts
func (p PlayerIdentity) Normalized() PlayerIdentity {
	return PlayerIdentity{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
	}
}

// Validate checks that both name parts are present
func (p PlayerIdentity) Validate() error {
	n := p.Normalized()
	if n.FirstName == "" || n.LastName == "" {
		return ErrInvalidPlayer
	}
	return nil
}

// FullName joins the name parts with a single space
func (p PlayerIdentity) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CanonicalName is the lower-cased full name used for hashing
func (p PlayerIdentity) CanonicalName() string {
	// A Caser is stateful, so one is built per call
	return cases.Lower(language.Und).String(p.Normalized().FullName())
}

// PlayerKey namespaces all per-player state. Distinct names may collide.
type PlayerKey int32

// NewPlayerKey hashes the canonical name with h = h*31 + c, wrapping at 32
// bits. c is taken once per code point: its UTF-16 unit, or the high
// surrogate for characters outside the BMP. Existing stored keys depend on
// this exact value.
func NewPlayerKey(p PlayerIdentity) PlayerKey {
	var h int32
	for _, r := range p.CanonicalName() {
		c := r
		if hi, _ := utf16.EncodeRune(r); hi != unicode.ReplacementChar {
			c = hi
		}
		h = h*31 + int32(c)
	}
	return PlayerKey(h)
}

// String returns the decimal form used in storage keys
func (k PlayerKey) String() string {
	return strconv.FormatInt(int64(k), 10)
}
