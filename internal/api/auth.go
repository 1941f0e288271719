package api

import (
	"context"
	"net/http"

	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/domain/model"
)

// AuthAPI implements ports.Authenticator over the /auth endpoints.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI returns the authentication surface of the client.
func NewAuthAPI(c *Client) *AuthAPI { return &AuthAPI{c: c} }

// Login exchanges credentials for a token pair and the user profile. It
// does not persist anything; session storage is the auth service's job.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (auth.Session, error) {
	var out struct {
		User    *model.User `json:"user"`
		Access  string      `json:"access"`
		Refresh string      `json:"refresh"`
	}
	err := a.c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/login/",
		body:      map[string]string{"username": username, "password": password},
		anonymous: true,
	}, &out)
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{
		User:          out.User,
		AccessToken:   out.Access,
		RefreshToken:  out.Refresh,
		Authenticated: true,
	}, nil
}

// Logout blacklists the refresh token server-side.
func (a *AuthAPI) Logout(ctx context.Context, refreshToken string) error {
	return a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/logout/",
		body:   map[string]string{"refresh": refreshToken},
	}, nil)
}

// Profile fetches the authenticated user's own record.
func (a *AuthAPI) Profile(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := a.c.do(ctx, request{method: http.MethodGet, path: "/auth/profile/"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the authenticated user's own record.
func (a *AuthAPI) UpdateProfile(ctx context.Context, patch model.UserUpdate) (*model.User, error) {
	var out model.User
	err := a.c.do(ctx, request{method: http.MethodPatch, path: "/auth/profile/", body: patch}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword rotates the authenticated user's password.
func (a *AuthAPI) ChangePassword(ctx context.Context, change model.PasswordChange) error {
	return a.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/change-password/",
		body:   change,
	}, nil)
}
