package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API      ports.Authenticator
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// AuthService orchestrates login, logout and profile management over the
// session store.
type AuthService struct {
	api      ports.Authenticator
	sessions ports.SessionStore
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{api: opts.API, sessions: opts.Sessions, logger: logger}
}

// Login authenticates and persists the resulting session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	sess, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("logged in", "username", username, "role", sess.Role())
	return sess.User, nil
}

// Logout revokes the refresh token server-side on a best-effort basis and
// always clears the local session.
func (s *AuthService) Logout(ctx context.Context) error {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess.RefreshToken != "" {
		if err := s.api.Logout(ctx, sess.RefreshToken); err != nil {
			s.logger.Warn("server-side logout failed, clearing local session anyway", "error", err)
		}
	}
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the persisted session.
func (s *AuthService) Current(ctx context.Context) (auth.Session, error) {
	return s.sessions.Load(ctx)
}

// Profile fetches the logged-in user's record from the server and syncs
// the persisted session copy.
func (s *AuthService) Profile(ctx context.Context) (*model.User, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	s.syncSessionUser(ctx, user)
	return user, nil
}

// UpdateProfile patches the logged-in user's record.
func (s *AuthService) UpdateProfile(ctx context.Context, patch model.UserUpdate) (*model.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	user, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.syncSessionUser(ctx, user)
	return user, nil
}

// ChangePassword rotates the logged-in user's password.
func (s *AuthService) ChangePassword(ctx context.Context, change model.PasswordChange) error {
	if change.OldPassword == "" || change.NewPassword == "" {
		return fmt.Errorf("old and new password are required")
	}
	if change.OldPassword == change.NewPassword {
		return fmt.Errorf("new password must differ from the old one")
	}
	if err := s.api.ChangePassword(ctx, change); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (s *AuthService) syncSessionUser(ctx context.Context, user *model.User) {
	sess, err := s.sessions.Load(ctx)
	if err != nil || !sess.Authenticated {
		return
	}
	sess.User = user
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Warn("sync session user", "error", err)
	}
}
