package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("LEELA_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("LEELA_TOKEN"),
		TokenFile: getEnvOrDefault("LEELA_TOKEN_FILE", defaultTokenFile()),
		Output:    getEnvOrDefault("LEELA_OUTPUT", OutputText),
		Verbose:   false,
	}
}

// Validate checks the flag and env values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q: want %s or %s", c.Output, OutputText, OutputJSON)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is empty")
	}
	return nil
}

// LoadToken loads the admin token from file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No token file is fine
		}
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken saves the admin token to the token file
func (c *Config) SaveToken(token string) error {
	c.Token = token

	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".leela/token"
	}
	return filepath.Join(home, ".leela", "token")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
