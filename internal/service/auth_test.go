package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/mocks"
)

func TestAuthService_LoginPersistsSession(t *testing.T) {
	store := mocks.NewMemorySessionStore(auth.Session{})
	svc := NewAuthService(AuthServiceOptions{
		API:      &mocks.MockAuthenticator{},
		Sessions: store,
	})

	user, err := svc.Login(context.Background(), "anna", "pw")
	require.NoError(t, err)
	assert.Equal(t, "anna", user.Username)

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)
}

func TestAuthService_LoginFailureLeavesSessionAlone(t *testing.T) {
	store := mocks.NewMemorySessionStore(auth.Session{})
	api := &mocks.MockAuthenticator{
		LoginFunc: func(_ context.Context, _, _ string) (auth.Session, error) {
			return auth.Session{}, errors.New("invalid credentials")
		},
	}
	svc := NewAuthService(AuthServiceOptions{API: api, Sessions: store})

	_, err := svc.Login(context.Background(), "anna", "wrong")
	require.Error(t, err)

	sess, _ := store.Load(context.Background())
	assert.False(t, sess.Authenticated)
}

func TestAuthService_LogoutAlwaysClears(t *testing.T) {
	store := mocks.NewMemorySessionStore(auth.Session{
		User:          &model.User{ID: 1, Username: "anna"},
		RefreshToken:  "refresh-1",
		Authenticated: true,
	})
	var revoked string
	api := &mocks.MockAuthenticator{
		LogoutFunc: func(_ context.Context, refreshToken string) error {
			revoked = refreshToken
			return errors.New("backend unreachable")
		},
	}
	svc := NewAuthService(AuthServiceOptions{API: api, Sessions: store})

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, "refresh-1", revoked)

	sess, _ := store.Load(context.Background())
	assert.False(t, sess.Authenticated)
	assert.Empty(t, sess.RefreshToken)
}

func TestAuthService_ProfileSyncsSessionUser(t *testing.T) {
	store := mocks.NewMemorySessionStore(auth.Session{
		User:          &model.User{ID: 1, Username: "anna", FirstName: "An"},
		AccessToken:   "a",
		Authenticated: true,
	})
	api := &mocks.MockAuthenticator{
		ProfileFunc: func(_ context.Context) (*model.User, error) {
			return &model.User{ID: 1, Username: "anna", FirstName: "Anna"}, nil
		},
	}
	svc := NewAuthService(AuthServiceOptions{API: api, Sessions: store})

	user, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.FirstName)

	sess, _ := store.Load(context.Background())
	require.NotNil(t, sess.User)
	assert.Equal(t, "Anna", sess.User.FirstName)
}

func TestAuthService_UpdateProfileRejectsBadPatch(t *testing.T) {
	bad := "not-an-email"
	svc := NewAuthService(AuthServiceOptions{
		API:      &mocks.MockAuthenticator{},
		Sessions: mocks.NewMemorySessionStore(auth.Session{}),
	})

	_, err := svc.UpdateProfile(context.Background(), model.UserUpdate{Email: &bad})
	assert.Error(t, err)
}

func TestAuthService_ChangePasswordChecks(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		API:      &mocks.MockAuthenticator{},
		Sessions: mocks.NewMemorySessionStore(auth.Session{}),
	})
	ctx := context.Background()

	assert.Error(t, svc.ChangePassword(ctx, model.PasswordChange{NewPassword: "new"}))
	assert.Error(t, svc.ChangePassword(ctx, model.PasswordChange{OldPassword: "same", NewPassword: "same"}))
	assert.NoError(t, svc.ChangePassword(ctx, model.PasswordChange{OldPassword: "old", NewPassword: "new"}))
}
