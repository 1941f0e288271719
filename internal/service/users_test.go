package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/mocks"
)

func validCreate() model.UserCreate {
	return model.UserCreate{
		Username:  "mrossi",
		Email:     "mario.rossi@volontari.it",
		FirstName: "Mario",
		LastName:  "Rossi",
		Role:      model.RoleBase,
	}
}

func TestUserService_ApplyBulkEmptySelection(t *testing.T) {
	var dispatched bool
	dir := &mocks.MockUserDirectory{
		BulkActionFunc: func(_ context.Context, _ model.BulkAction) (*model.BulkResult, error) {
			dispatched = true
			return nil, nil
		},
	}
	svc := NewUserService(UserServiceOptions{Directory: dir})

	_, err := svc.ApplyBulk(context.Background(), model.BulkActivate, "")
	require.ErrorIs(t, err, ErrEmptySelection)
	assert.False(t, dispatched, "empty selection must never reach the network")
}

func TestUserService_ApplyBulkSuccessClearsSelectionAndRefreshes(t *testing.T) {
	var listCalls int
	dir := &mocks.MockUserDirectory{
		BulkActionFunc: func(_ context.Context, action model.BulkAction) (*model.BulkResult, error) {
			assert.Equal(t, []int{2, 5}, action.UserIDs)
			assert.Equal(t, model.BulkDeactivate, action.Action)
			return &model.BulkResult{Message: "2 utenti disattivati", UpdatedCount: 2}, nil
		},
	}
	dir.ListFunc = func(_ context.Context, _ map[string]string) ([]model.User, error) {
		listCalls++
		return []model.User{{ID: 2}, {ID: 5}}, nil
	}
	svc := NewUserService(UserServiceOptions{Directory: dir})
	svc.Select(5, 2)

	result, err := svc.ApplyBulk(context.Background(), model.BulkDeactivate, "")
	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Empty(t, svc.Selected(), "selection cleared after success")
	assert.Equal(t, 1, listCalls, "list refreshed from the server")
}

func TestUserService_ApplyBulkFailureKeepsSelection(t *testing.T) {
	dir := &mocks.MockUserDirectory{
		BulkActionFunc: func(_ context.Context, _ model.BulkAction) (*model.BulkResult, error) {
			return nil, errors.New("backend rejected")
		},
	}
	svc := NewUserService(UserServiceOptions{Directory: dir})
	svc.Select(1, 2, 3)

	_, err := svc.ApplyBulk(context.Background(), model.BulkDelete, "")
	require.Error(t, err)
	assert.Equal(t, []int{1, 2, 3}, svc.Selected(), "selection retained for retry")
}

func TestUserService_ApplyBulkAssignRoleNeedsValidRole(t *testing.T) {
	svc := NewUserService(UserServiceOptions{Directory: &mocks.MockUserDirectory{}})
	svc.Select(1)

	_, err := svc.ApplyBulk(context.Background(), model.BulkAssignRole, "")
	require.Error(t, err)

	_, err = svc.ApplyBulk(context.Background(), model.BulkAssignRole, model.Role("boss"))
	require.Error(t, err)

	_, err = svc.ApplyBulk(context.Background(), model.BulkAssignRole, model.RoleAdmin)
	assert.NoError(t, err)
}

func TestUserService_ApplyBulkBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	dir := &mocks.MockUserDirectory{
		BulkActionFunc: func(_ context.Context, _ model.BulkAction) (*model.BulkResult, error) {
			close(started)
			<-release
			return &model.BulkResult{}, nil
		},
	}
	svc := NewUserService(UserServiceOptions{Directory: dir})
	svc.Select(1)

	done := make(chan error, 1)
	go func() {
		_, err := svc.ApplyBulk(context.Background(), model.BulkActivate, "")
		done <- err
	}()
	<-started

	_, err := svc.ApplyBulk(context.Background(), model.BulkActivate, "")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestUserService_SelectionSet(t *testing.T) {
	svc := NewUserService(UserServiceOptions{Directory: &mocks.MockUserDirectory{}})

	svc.Select(3, 1, 3, 2)
	assert.Equal(t, []int{1, 2, 3}, svc.Selected())

	svc.Deselect(2)
	assert.Equal(t, []int{1, 3}, svc.Selected())

	svc.ClearSelection()
	assert.Empty(t, svc.Selected())
}

func TestUserService_CreateValidatesLocally(t *testing.T) {
	var created bool
	dir := &mocks.MockUserDirectory{}
	dir.CreateFunc = func(_ context.Context, _ any) (*model.User, error) {
		created = true
		return &model.User{ID: 1}, nil
	}
	svc := NewUserService(UserServiceOptions{Directory: dir})

	req := validCreate()
	req.Email = "missing-at-sign"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.False(t, created)
}

func TestUserService_CreateAndSendCredentialsWarning(t *testing.T) {
	dir := &mocks.MockUserDirectory{
		BulkActionFunc: func(_ context.Context, action model.BulkAction) (*model.BulkResult, error) {
			assert.Equal(t, model.BulkSendCredentials, action.Action)
			return nil, errors.New("smtp down")
		},
	}
	dir.CreateFunc = func(_ context.Context, _ any) (*model.User, error) {
		return &model.User{ID: 42, Username: "mrossi"}, nil
	}
	svc := NewUserService(UserServiceOptions{Directory: dir})

	res, err := svc.CreateAndSendCredentials(context.Background(), validCreate())
	require.NoError(t, err, "delivery failure must not void the creation")
	require.NotNil(t, res.User)
	assert.Equal(t, 42, res.User.ID)
	assert.Error(t, res.CredentialWarning)
}

func TestUserService_DeleteDropsFromSelection(t *testing.T) {
	dir := &mocks.MockUserDirectory{}
	svc := NewUserService(UserServiceOptions{Directory: dir})
	svc.Select(7, 8)

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Equal(t, []int{8}, svc.Selected())
}
