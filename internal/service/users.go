package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Directory ports.UserDirectory
	Logger    *slog.Logger
}

// UserService manages the user list, a selection set and the bulk-action
// dispatch. Selection membership is pure client state; the backend only
// ever sees the final id list.
type UserService struct {
	dir    ports.UserDirectory
	logger *slog.Logger

	mu        sync.Mutex
	users     []model.User
	selection map[int]struct{}
	busy      bool
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		dir:       opts.Directory,
		logger:    logger,
		selection: make(map[int]struct{}),
	}
}

// List fetches users with the given filter and refreshes the local list.
func (s *UserService) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	users, err := s.dir.List(ctx, filter.Query())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return users, nil
}

// Get fetches one user.
func (s *UserService) Get(ctx context.Context, id int) (*model.User, error) {
	return s.dir.Get(ctx, id)
}

// Create validates locally, then creates the user.
func (s *UserService) Create(ctx context.Context, req model.UserCreate) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.dir.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.mu.Lock()
	s.users = append(s.users, *user)
	s.mu.Unlock()
	return user, nil
}

// CreateResult is the outcome of CreateAndSendCredentials. A non-nil
// CredentialWarning means the account exists but the credential mail did
// not go out.
type CreateResult struct {
	User              *model.User
	CredentialWarning error
}

// CreateAndSendCredentials creates the user, then mails the initial
// credentials through the bulk endpoint. A delivery failure does not void
// the creation; it is reported as a warning on the result.
func (s *UserService) CreateAndSendCredentials(
	ctx context.Context,
	req model.UserCreate,
) (*CreateResult, error) {
	user, err := s.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	res := &CreateResult{User: user}
	_, sendErr := s.dir.BulkAction(ctx, model.BulkAction{
		UserIDs: []int{user.ID},
		Action:  model.BulkSendCredentials,
	})
	if sendErr != nil {
		s.logger.Warn("user created but credential delivery failed",
			"user_id", user.ID, "error", sendErr)
		res.CredentialWarning = fmt.Errorf("sending credentials failed: %w", sendErr)
	}
	return res, nil
}

// Update validates the patch locally, then applies it.
func (s *UserService) Update(ctx context.Context, id int, patch model.UserUpdate) (*model.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	user, err := s.dir.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = *user
			break
		}
	}
	s.mu.Unlock()
	return user, nil
}

// Delete soft-deletes the user and drops it from the local list and the
// selection.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.dir.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.mu.Lock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	delete(s.selection, id)
	s.mu.Unlock()
	return nil
}

// Restore undeletes a soft-deleted user.
func (s *UserService) Restore(ctx context.Context, id int) error {
	if err := s.dir.Restore(ctx, id); err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

// WorkAreas lists the reference work areas.
func (s *UserService) WorkAreas(ctx context.Context) ([]model.WorkArea, error) {
	areas, err := s.dir.WorkAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("list work areas: %w", err)
	}
	return areas, nil
}

// Export downloads the filtered user list as CSV bytes.
func (s *UserService) Export(ctx context.Context, filter model.ExportFilter) ([]byte, error) {
	data, err := s.dir.Export(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	return data, nil
}

// Select adds users to the selection set. Unknown ids are accepted; the
// server validates membership on dispatch.
func (s *UserService) Select(ids ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.selection[id] = struct{}{}
	}
}

// Deselect removes users from the selection set.
func (s *UserService) Deselect(ids ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.selection, id)
	}
}

// ClearSelection empties the selection set.
func (s *UserService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[int]struct{})
}

// Selected returns the selected ids in ascending order.
func (s *UserService) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ApplyBulk dispatches one bulk action against the current selection. On
// success the user list is refreshed from the server and the selection is
// cleared; on failure the selection is retained so the caller can retry.
func (s *UserService) ApplyBulk(
	ctx context.Context,
	action model.BulkActionName,
	role model.Role,
) (*model.BulkResult, error) {
	ids := s.Selected()
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	req := model.BulkAction{UserIDs: ids, Action: action, Role: role}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	result, err := s.dir.BulkAction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bulk %s: %w", action, err)
	}

	// The server mutated an unknown subset; refetch rather than patch the
	// cached list.
	if _, err := s.List(ctx, model.UserFilter{}); err != nil {
		s.logger.Warn("user list refresh after bulk action failed", "error", err)
	}
	s.ClearSelection()

	s.logger.Info("bulk action applied", "action", action, "targets", len(ids))
	return result, nil
}
