package config

import (
	"strings"
	"time"
)

// APIConfig describes the remote volunteer-management API endpoint.
type APIConfig struct {
	// BaseURL is the root of the remote REST API, including the /api prefix
	// (e.g. "https://volunteers.example.org/api").
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api"`

	// Timeout is the fixed per-request timeout. The remote API defines no
	// long-running calls, so a single client-wide value is enough.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	// RetryCount is the number of transport-level retries for idempotent
	// requests that fail with a network error or a 5xx response.
	RetryCount int `env:"API_RETRY_COUNT" envDefault:"2"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
	if a.RetryCount < 0 {
		a.RetryCount = 0
	}
	if a.RetryCount > 5 {
		a.RetryCount = 5
	}
}
