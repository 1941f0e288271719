package ports

// Package ports defines interfaces (hexagonal ports) for session
// persistence, caching, and the remote API surface. Implementations live
// in internal/api and internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/domain/model"
)

// SessionStore persists the single client session across process restarts.
// Save is called on every credential change; Clear removes the persisted
// state completely.
type SessionStore interface {
	Load(ctx context.Context) (auth.Session, error)
	Save(ctx context.Context, sess auth.Session) error
	Clear(ctx context.Context) error
}

// CacheRepository is an optional shared cache for list snapshots. A nil
// value disables caching; Get returns (nil, nil) on a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}

// ResourceRepository is the uniform remote CRUD contract shared by every
// resource type. Mutating calls return the server's representation, which
// is the only value stores may merge into their caches.
type ResourceRepository[T any] interface {
	List(ctx context.Context, query map[string]string) ([]T, error)
	Get(ctx context.Context, id int) (*T, error)
	Create(ctx context.Context, payload any) (*T, error)
	Update(ctx context.Context, id int, patch any) (*T, error)
	Delete(ctx context.Context, id int) error
}

// ImportFile is a CSV payload handed to the two-phase import endpoints,
// already read into memory and size-checked by the workflow.
type ImportFile struct {
	Name            string
	Content         []byte
	SendCredentials bool
}

// UserDirectory is the user-management surface beyond plain CRUD.
type UserDirectory interface {
	ResourceRepository[model.User]

	BulkAction(ctx context.Context, action model.BulkAction) (*model.BulkResult, error)
	ImportPreview(ctx context.Context, file ImportFile) (*model.ImportPreview, error)
	ImportConfirm(ctx context.Context, file ImportFile) (*model.ImportResult, error)
	Export(ctx context.Context, filter model.ExportFilter) ([]byte, error)
	Restore(ctx context.Context, id int) error
	WorkAreas(ctx context.Context) ([]model.WorkArea, error)
}

// Authenticator is the login surface of the remote API.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (auth.Session, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, patch model.UserUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, change model.PasswordChange) error
}

// DocumentLibrary extends document CRUD with file transfer.
type DocumentLibrary interface {
	ResourceRepository[model.Document]

	Upload(ctx context.Context, meta model.DocumentUpload, name string, content []byte) (*model.Document, error)
	Download(ctx context.Context, id int) ([]byte, error)
}

// ShiftSchedule extends shift CRUD with the calendar-oriented queries the
// board views rely on.
type ShiftSchedule interface {
	ResourceRepository[model.Shift]

	Calendar(ctx context.Context, month time.Time) ([]model.Shift, error)
	Upcoming(ctx context.Context, limit int) ([]model.Shift, error)
}
