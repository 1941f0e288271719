package sessionfile

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/domain/model"
)

func testSession() auth.Session {
	return auth.Session{
		User:          &model.User{ID: 1, Username: "anna", Role: model.RoleAdmin},
		AccessToken:   "access",
		RefreshToken:  "refresh",
		Authenticated: true,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := New(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Authenticated)
	assert.Equal(t, "access", got.AccessToken)
	require.NotNil(t, got.User)
	assert.Equal(t, "anna", got.User.Username)
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "session.json"))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Authenticated)
	assert.Nil(t, got.User)
}

func TestStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := New(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession()))
	require.NoError(t, store.Clear(ctx))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is a no-op.
	assert.NoError(t, store.Clear(ctx))
}

func TestStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "session.json")
	store := New(path)

	require.NoError(t, store.Save(context.Background(), testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := New(path).Load(context.Background())
	assert.Error(t, err)
}
