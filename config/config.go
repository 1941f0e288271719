package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: remote API endpoint configuration
//   - session.go: persisted session configuration
//   - cache.go: optional shared cache configuration
//   - limits.go: upload size ceilings
type AppConfig struct {
	// IsDev controls development mode behavior (request debug logging).
	IsDev bool `env:"DEV" envDefault:"false"`

	// Remote API endpoint configuration
	API APIConfig

	// Persisted session configuration
	Session SessionConfig

	// Shared response cache configuration
	Cache CacheConfig `envPrefix:"CACHE_"`

	// Upload ceilings
	Limits LimitsConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Cache.Sanitize()
	c.Limits.Sanitize()
}
