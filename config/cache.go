package config

import "time"

// CacheConfig configures the optional shared response cache. When Addr is
// empty the cache is disabled and resource stores keep in-process state
// only; with an address set, list snapshots survive across invocations.
type CacheConfig struct {
	// Addr is the Redis address (host:port). Empty disables the cache.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// TTL bounds how long a cached list snapshot is trusted.
	TTL time.Duration `env:"TTL" envDefault:"5m"`
}

// Enabled reports whether a shared cache backend is configured.
func (c CacheConfig) Enabled() bool { return c.Addr != "" }

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
	if c.DB < 0 {
		c.DB = 0
	}
}
