package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/volops/voladmin/internal/ports"
)

// StoreOptions groups dependencies for Store.
type StoreOptions[T any] struct {
	Repo ports.ResourceRepository[T]
	// ID extracts the server-assigned identifier; mutations use it to
	// merge the confirmed representation back into the cached list.
	ID func(T) int

	// Cache is optional; nil disables the shared snapshot cache.
	Cache  ports.CacheRepository
	Name   string
	TTL    time.Duration
	Logger *slog.Logger
}

// Store caches one resource collection over its remote repository. The
// cached list is only ever updated from server-confirmed representations:
// mutations apply after the response arrives, never optimistically.
type Store[T any] struct {
	repo   ports.ResourceRepository[T]
	id     func(T) int
	cache  ports.CacheRepository
	name   string
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	items   []T
	loading bool
	busy    bool
	err     error
}

// NewStore constructs a new Store.
func NewStore[T any](opts StoreOptions[T]) *Store[T] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[T]{
		repo:   opts.Repo,
		id:     opts.ID,
		cache:  opts.Cache,
		name:   opts.Name,
		ttl:    opts.TTL,
		logger: logger,
	}
}

// FetchAll loads the collection and makes the response the current item
// list. An unfiltered fetch consults the shared snapshot cache first;
// filtered fetches always hit the server and never write the snapshot.
func (s *Store[T]) FetchAll(ctx context.Context, query map[string]string) ([]T, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	unfiltered := len(query) == 0
	if unfiltered {
		if items, ok := s.fromCache(ctx); ok {
			s.setItems(items, nil)
			return items, nil
		}
	}

	items, err := s.repo.List(ctx, query)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.setItems(items, nil)
	if unfiltered {
		s.toCache(ctx, items)
	}
	return items, nil
}

// FetchOne loads a single item without touching the cached list.
func (s *Store[T]) FetchOne(ctx context.Context, id int) (*T, error) {
	item, err := s.repo.Get(ctx, id)
	s.setErr(err)
	return item, err
}

// Create sends the payload and appends the server's representation to the
// cached list once confirmed.
func (s *Store[T]) Create(ctx context.Context, payload any) (*T, error) {
	if err := checkPayload(payload); err != nil {
		return nil, err
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	item, err := s.repo.Create(ctx, payload)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.items = append(s.items, *item)
	s.err = nil
	s.mu.Unlock()
	s.invalidate(ctx)
	return item, nil
}

// Update patches the item and replaces the cached entry with the server's
// representation once confirmed.
func (s *Store[T]) Update(ctx context.Context, id int, patch any) (*T, error) {
	if err := checkPayload(patch); err != nil {
		return nil, err
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	item, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items[i] = *item
			break
		}
	}
	s.err = nil
	s.mu.Unlock()
	s.invalidate(ctx)
	return item, nil
}

// Remove deletes the item and evicts it from the cached list only after
// the server confirms.
func (s *Store[T]) Remove(ctx context.Context, id int) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if s.id(item) != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.err = nil
	s.mu.Unlock()
	s.invalidate(ctx)
	return nil
}

// Items returns a copy of the cached list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last operation error, nil after a success.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store[T]) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Store[T]) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Store[T]) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store[T]) setItems(items []T, err error) {
	s.mu.Lock()
	s.items = items
	s.err = err
	s.mu.Unlock()
}

func (s *Store[T]) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *Store[T]) cacheKey() string { return "list:" + s.name }

func (s *Store[T]) fromCache(ctx context.Context) ([]T, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		s.logger.Warn("cache read failed, falling back to server", "store", s.name, "error", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("cache entry corrupt, discarding", "store", s.name, "error", err)
		s.invalidate(ctx)
		return nil, false
	}
	return items, true
}

func (s *Store[T]) toCache(ctx context.Context, items []T) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("cache encode", "store", s.name, "error", err)
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), data, s.ttl); err != nil {
		s.logger.Warn("cache write", "store", s.name, "error", err)
	}
}

func (s *Store[T]) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, s.cacheKey()); err != nil {
		s.logger.Warn("cache invalidate", "store", s.name, "error", err)
	}
}

// validate is implemented by payloads with local field checks.
type validate interface{ Validate() error }

// checkPayload runs local validation when the payload supports it, so a
// malformed request never reaches the network.
func checkPayload(payload any) error {
	v, ok := payload.(validate)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
