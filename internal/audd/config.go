// Package audd provides an AudD audio fingerprinting API client for
// recognizing songs from uploaded audio clips.
package audd

import (
	"errors"
	"os"
)

// ErrMissingAPIKey is returned when AUDD_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing AUDD_API_KEY environment variable")

// Config holds AudD API configuration.
type Config struct {
	APIKey string
}

// LoadConfig reads AudD configuration from environment variables.
// Returns ErrMissingAPIKey if AUDD_API_KEY is not set.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("AUDD_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Config{APIKey: apiKey}, nil
}
