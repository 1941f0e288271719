package mocks

// Package mocks contains simple hand-written test doubles for the client
// ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore            = (*MemorySessionStore)(nil)
	_ ports.CacheRepository         = (*MemoryCache)(nil)
	_ ports.Authenticator           = (*MockAuthenticator)(nil)
	_ ports.UserDirectory           = (*MockUserDirectory)(nil)
	_ ports.ResourceRepository[int] = (*MockRepository[int])(nil)
	_ ports.ShiftSchedule           = (*MockShiftSchedule)(nil)
)

// MemorySessionStore holds the single client session in memory. Func
// fields override individual methods when set.
type MemorySessionStore struct {
	mu   sync.Mutex
	sess auth.Session

	LoadFunc  func(ctx context.Context) (auth.Session, error)
	SaveFunc  func(ctx context.Context, sess auth.Session) error
	ClearFunc func(ctx context.Context) error
}

// NewMemorySessionStore creates an in-memory session store seeded with
// the given session.
func NewMemorySessionStore(sess auth.Session) *MemorySessionStore {
	return &MemorySessionStore{sess: sess}
}

func (m *MemorySessionStore) Load(ctx context.Context) (auth.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, nil
}

func (m *MemorySessionStore) Save(ctx context.Context, sess auth.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, sess)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	return nil
}

func (m *MemorySessionStore) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = auth.Session{}
	return nil
}

// MemoryCache is a map-backed cache for unit tests. TTLs are recorded but
// never enforced.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	TTLs    map[string]time.Duration
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]byte),
		TTLs:    make(map[string]time.Duration),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key], nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.TTLs[key] = ttl
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	delete(m.entries, key)
	delete(m.TTLs, key)
	return ok, nil
}

// MockAuthenticator is a func-field double for ports.Authenticator.
type MockAuthenticator struct {
	LoginFunc          func(ctx context.Context, username, password string) (auth.Session, error)
	LogoutFunc         func(ctx context.Context, refreshToken string) error
	ProfileFunc        func(ctx context.Context) (*model.User, error)
	UpdateProfileFunc  func(ctx context.Context, patch model.UserUpdate) (*model.User, error)
	ChangePasswordFunc func(ctx context.Context, change model.PasswordChange) error
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (auth.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return auth.Session{
		User:          &model.User{ID: 1, Username: username, Role: model.RoleAdmin},
		AccessToken:   "access-1",
		RefreshToken:  "refresh-1",
		Authenticated: true,
	}, nil
}

func (m *MockAuthenticator) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthenticator) Profile(ctx context.Context) (*model.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return &model.User{ID: 1, Username: "mock"}, nil
}

func (m *MockAuthenticator) UpdateProfile(ctx context.Context, patch model.UserUpdate) (*model.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, patch)
	}
	return &model.User{ID: 1, Username: "mock"}, nil
}

func (m *MockAuthenticator) ChangePassword(ctx context.Context, change model.PasswordChange) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, change)
	}
	return nil
}

// MockRepository is a func-field double for ports.ResourceRepository.
type MockRepository[T any] struct {
	ListFunc   func(ctx context.Context, query map[string]string) ([]T, error)
	GetFunc    func(ctx context.Context, id int) (*T, error)
	CreateFunc func(ctx context.Context, payload any) (*T, error)
	UpdateFunc func(ctx context.Context, id int, patch any) (*T, error)
	DeleteFunc func(ctx context.Context, id int) error
}

func (m *MockRepository[T]) List(ctx context.Context, query map[string]string) ([]T, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockRepository[T]) Get(ctx context.Context, id int) (*T, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return new(T), nil
}

func (m *MockRepository[T]) Create(ctx context.Context, payload any) (*T, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return new(T), nil
}

func (m *MockRepository[T]) Update(ctx context.Context, id int, patch any) (*T, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return new(T), nil
}

func (m *MockRepository[T]) Delete(ctx context.Context, id int) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockShiftSchedule is a func-field double for ports.ShiftSchedule.
type MockShiftSchedule struct {
	MockRepository[model.Shift]

	CalendarFunc func(ctx context.Context, month time.Time) ([]model.Shift, error)
	UpcomingFunc func(ctx context.Context, limit int) ([]model.Shift, error)
}

func (m *MockShiftSchedule) Calendar(ctx context.Context, month time.Time) ([]model.Shift, error) {
	if m.CalendarFunc != nil {
		return m.CalendarFunc(ctx, month)
	}
	return nil, nil
}

func (m *MockShiftSchedule) Upcoming(ctx context.Context, limit int) ([]model.Shift, error) {
	if m.UpcomingFunc != nil {
		return m.UpcomingFunc(ctx, limit)
	}
	return nil, nil
}

// MockUserDirectory is a func-field double for ports.UserDirectory.
type MockUserDirectory struct {
	MockRepository[model.User]

	BulkActionFunc    func(ctx context.Context, action model.BulkAction) (*model.BulkResult, error)
	ImportPreviewFunc func(ctx context.Context, file ports.ImportFile) (*model.ImportPreview, error)
	ImportConfirmFunc func(ctx context.Context, file ports.ImportFile) (*model.ImportResult, error)
	ExportFunc        func(ctx context.Context, filter model.ExportFilter) ([]byte, error)
	RestoreFunc       func(ctx context.Context, id int) error
	WorkAreasFunc     func(ctx context.Context) ([]model.WorkArea, error)
}

func (m *MockUserDirectory) BulkAction(ctx context.Context, action model.BulkAction) (*model.BulkResult, error) {
	if m.BulkActionFunc != nil {
		return m.BulkActionFunc(ctx, action)
	}
	return &model.BulkResult{Message: "ok"}, nil
}

func (m *MockUserDirectory) ImportPreview(ctx context.Context, file ports.ImportFile) (*model.ImportPreview, error) {
	if m.ImportPreviewFunc != nil {
		return m.ImportPreviewFunc(ctx, file)
	}
	return &model.ImportPreview{}, nil
}

func (m *MockUserDirectory) ImportConfirm(ctx context.Context, file ports.ImportFile) (*model.ImportResult, error) {
	if m.ImportConfirmFunc != nil {
		return m.ImportConfirmFunc(ctx, file)
	}
	return &model.ImportResult{Message: "ok"}, nil
}

func (m *MockUserDirectory) Export(ctx context.Context, filter model.ExportFilter) ([]byte, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockUserDirectory) Restore(ctx context.Context, id int) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockUserDirectory) WorkAreas(ctx context.Context) ([]model.WorkArea, error) {
	if m.WorkAreasFunc != nil {
		return m.WorkAreasFunc(ctx)
	}
	return nil, nil
}
