package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds client configuration.
type Config struct {
	APIBaseURL string
	DebugLog   string // path for the debug log file; empty disables logging
}

// Load reads config from a .env file (if present) and environment variables
// with sensible defaults. LENDAROUND_API_URL takes precedence over API_URL.
func Load() *Config {
	_ = godotenv.Load()

	base := os.Getenv("LENDAROUND_API_URL")
	if base == "" {
		base = os.Getenv("API_URL")
	}
	if base == "" {
		base = "http://localhost:8080"
	}

	return &Config{
		APIBaseURL: base,
		DebugLog:   os.Getenv("LENDAROUND_DEBUG_LOG"),
	}
}
