// Package auth guards the admin endpoints with a bcrypt-hashed bearer token.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminDisabled      = errors.New("admin access is not configured")
)

// Service verifies admin tokens against a single bcrypt hash
type Service struct {
	tokenHash []byte
	logger    *slog.Logger
}

// Config holds configuration for the auth service
type Config struct {
	// TokenHash is the bcrypt hash of the admin token. Empty disables admin access.
	TokenHash string
}

// New creates a new auth Service
func New(cfg Config, logger *slog.Logger) *Service {
	return &Service{
		tokenHash: []byte(strings.TrimSpace(cfg.TokenHash)),
		logger:    logger,
	}
}

// Enabled reports whether an admin token hash is configured
func (s *Service) Enabled() bool {
	return len(s.tokenHash) > 0
}

// Verify checks token against the configured hash
func (s *Service) Verify(token string) error {
	if !s.Enabled() {
		return ErrAdminDisabled
	}
	if token == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.tokenHash, []byte(token)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("admin token hash unusable", slog.String("error", err.Error()))
		}
		return ErrInvalidCredentials
	}
	return nil
}

// HashToken returns the bcrypt hash to configure for token
func HashToken(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateToken returns a random URL-safe admin token
func GenerateToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
