package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/volops/voladmin/internal/domain/model"
)

func sessionWithRole(role model.Role) Session {
	return Session{
		User:          &model.User{ID: 1, Username: "anna", Role: role},
		AccessToken:   "access",
		RefreshToken:  "refresh",
		Authenticated: true,
	}
}

func TestSession_RoleHelpers(t *testing.T) {
	admin := sessionWithRole(model.RoleAdmin)
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsSuperAdmin())
	assert.False(t, admin.IsBase())
	assert.True(t, admin.HasRole(model.RoleAdmin))

	super := sessionWithRole(model.RoleSuperAdmin)
	assert.True(t, super.IsAdmin())
	assert.True(t, super.IsSuperAdmin())

	base := sessionWithRole(model.RoleBase)
	assert.False(t, base.IsAdmin())
	assert.True(t, base.IsBase())
}

func TestSession_Empty(t *testing.T) {
	var s Session
	assert.False(t, s.LoggedIn())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, model.Role(""), s.Role())
}

func TestSession_LoggedIn(t *testing.T) {
	s := sessionWithRole(model.RoleBase)
	assert.True(t, s.LoggedIn())

	s.Authenticated = false
	assert.False(t, s.LoggedIn())
}
