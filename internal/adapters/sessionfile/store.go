package sessionfile

// Package sessionfile persists the client session as a single JSON file,
// written on every credential change and removed on logout.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/ports"
)

var _ ports.SessionStore = (*Store)(nil)

// Store is a file-backed session store. A missing file loads as the zero
// session; the file is created with 0600 since it holds tokens.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store writing to the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session. A missing file is not an error; it
// means nobody is logged in.
func (s *Store) Load(_ context.Context) (auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return auth.Session{}, nil
		}
		return auth.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var sess auth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return auth.Session{}, fmt.Errorf("decode session file: %w", err)
	}
	return sess, nil
}

// Save writes the session atomically: temp file in the same directory,
// then rename.
func (s *Store) Save(_ context.Context, sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
