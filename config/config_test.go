package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAPIConfig_Sanitize_TrimsBaseURL(t *testing.T) {
	cfg := APIConfig{BaseURL: " https://volunteers.example.org/api/ ", Timeout: 10 * time.Second}
	cfg.Sanitize()
	assert.Equal(t, "https://volunteers.example.org/api", cfg.BaseURL)
}

func TestAPIConfig_Sanitize_Timeout(t *testing.T) {
	cfg := APIConfig{Timeout: 0}
	cfg.Sanitize()
	assert.Equal(t, 10*time.Second, cfg.Timeout)

	cfg = APIConfig{Timeout: -1 * time.Second}
	cfg.Sanitize()
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestAPIConfig_Sanitize_ClampsRetries(t *testing.T) {
	cfg := APIConfig{RetryCount: -3}
	cfg.Sanitize()
	assert.Equal(t, 0, cfg.RetryCount)

	cfg = APIConfig{RetryCount: 50}
	cfg.Sanitize()
	assert.Equal(t, 5, cfg.RetryCount)
}

func TestCacheConfig_Enabled(t *testing.T) {
	assert.False(t, CacheConfig{}.Enabled())
	assert.True(t, CacheConfig{Addr: "localhost:6379"}.Enabled())
}

func TestCacheConfig_Sanitize_Defaults(t *testing.T) {
	cfg := CacheConfig{TTL: 0, DB: -2}
	cfg.Sanitize()
	assert.Equal(t, 5*time.Minute, cfg.TTL)
	assert.Equal(t, 0, cfg.DB)
}

func TestLimitsConfig_Sanitize_Defaults(t *testing.T) {
	cfg := LimitsConfig{}
	cfg.Sanitize()
	assert.Equal(t, int64(DefaultImportMaxBytes), cfg.ImportMaxBytes)
	assert.Equal(t, int64(DefaultDocumentMaxBytes), cfg.DocumentMaxBytes)
}

func TestSessionConfig_ResolvePath_Explicit(t *testing.T) {
	cfg := SessionConfig{Path: "/tmp/session.json"}
	path, err := cfg.ResolvePath()
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/session.json", path)
}

func TestSessionConfig_ResolvePath_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := SessionConfig{}.ResolvePath()
	assert.NoError(t, err)
	assert.Contains(t, path, "voladmin")
	assert.Contains(t, path, "session.json")
}
