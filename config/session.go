package config

import (
	"os"
	"path/filepath"
)

// SessionConfig controls where the authenticated session is persisted.
// The session file holds the current user identity plus both JWT
// credentials and survives process restarts; it is removed completely on
// logout or irrecoverable refresh failure.
type SessionConfig struct {
	// Path is the session file location. Empty selects the default
	// location under the user config directory.
	Path string `env:"SESSION_PATH"`
}

// ResolvePath returns the configured session file path, falling back to
// <user-config-dir>/voladmin/session.json.
func (s SessionConfig) ResolvePath() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "voladmin", "session.json"), nil
}
