// Package config loads QuadPDE runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIBaseURL is used when QUADPDE_API_BASE_URL is unset.
const DefaultAPIBaseURL = "http://localhost:8000"

// Config is built once at startup and handed to the API client and
// front ends explicitly.
type Config struct {
	// APIBaseURL is the root of the quadratization service, without a
	// trailing slash.
	APIBaseURL string

	// RequestTimeout bounds each HTTP call. Zero means no timeout.
	RequestTimeout time.Duration

	// LogFile receives structured logs. Empty disables logging in the
	// TUI and sends it to stderr in the CLI.
	LogFile string
}

// Load reads the QUADPDE_* variables, falling back to defaults for
// anything unset or malformed.
func Load() Config {
	return Config{
		APIBaseURL:     strings.TrimRight(getenv("QUADPDE_API_BASE_URL", DefaultAPIBaseURL), "/"),
		RequestTimeout: time.Duration(getenvInt("QUADPDE_REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
		LogFile:        getenv("QUADPDE_LOG_FILE", ""),
	}
}

func getenv(k, fallback string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
