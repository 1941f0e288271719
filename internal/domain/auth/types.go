package auth

// Package auth contains domain-level types for the authenticated session.
// It is pure and free of transport/adapter concerns.

import (
	"github.com/volops/voladmin/internal/domain/model"
)

// Session is the client-side record persisted across restarts: the current
// user identity plus both JWT credentials. It is created on login, mutated
// on token refresh, and destroyed on logout or irrecoverable refresh
// failure.
type Session struct {
	User          *model.User `json:"user"`
	AccessToken   string      `json:"access_token"`
	RefreshToken  string      `json:"refresh_token"`
	Authenticated bool        `json:"authenticated"`
}

// Role returns the current user's role, or the empty role when logged out.
func (s Session) Role() model.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// HasRole reports whether the session user holds exactly the given role.
func (s Session) HasRole(role model.Role) bool { return s.Role() == role }

// IsAdmin reports whether the session user is an admin or superadmin.
func (s Session) IsAdmin() bool {
	r := s.Role()
	return r == model.RoleAdmin || r == model.RoleSuperAdmin
}

// IsSuperAdmin reports whether the session user is a superadmin.
func (s Session) IsSuperAdmin() bool { return s.Role() == model.RoleSuperAdmin }

// IsBase reports whether the session user holds the base role.
func (s Session) IsBase() bool { return s.Role() == model.RoleBase }

// LoggedIn reports whether the session carries an authenticated identity.
func (s Session) LoggedIn() bool { return s.Authenticated && s.User != nil }
