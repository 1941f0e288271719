package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/mocks"
)

func activityStore(repo *mocks.MockRepository[model.Activity], cache *mocks.MemoryCache) *Store[model.Activity] {
	opts := StoreOptions[model.Activity]{
		Repo: repo,
		ID:   func(a model.Activity) int { return a.ID },
		Name: "activities",
		TTL:  time.Minute,
	}
	if cache != nil {
		opts.Cache = cache
	}
	return NewStore(opts)
}

func TestStore_FetchAllPopulatesItems(t *testing.T) {
	repo := &mocks.MockRepository[model.Activity]{
		ListFunc: func(_ context.Context, _ map[string]string) ([]model.Activity, error) {
			return []model.Activity{{ID: 1, Name: "Trasporto"}}, nil
		},
	}
	store := activityStore(repo, nil)

	items, err := store.FetchAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Trasporto", store.Items()[0].Name)
	assert.NoError(t, store.Err())
	assert.False(t, store.Loading())
}

func TestStore_FetchAllRecordsError(t *testing.T) {
	boom := errors.New("server down")
	repo := &mocks.MockRepository[model.Activity]{
		ListFunc: func(_ context.Context, _ map[string]string) ([]model.Activity, error) {
			return nil, boom
		},
	}
	store := activityStore(repo, nil)

	_, err := store.FetchAll(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Err(), boom)

	// A subsequent success clears the error slot.
	repo.ListFunc = func(_ context.Context, _ map[string]string) ([]model.Activity, error) {
		return []model.Activity{}, nil
	}
	_, err = store.FetchAll(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, store.Err())
}

func TestStore_CreateAppendsAfterConfirmation(t *testing.T) {
	created := model.Activity{ID: 7, Name: "Centralino"}
	repo := &mocks.MockRepository[model.Activity]{
		CreateFunc: func(_ context.Context, _ any) (*model.Activity, error) {
			return &created, nil
		},
	}
	store := activityStore(repo, nil)

	item, err := store.Create(context.Background(), model.ActivityCreate{Name: "Centralino"})
	require.NoError(t, err)
	assert.Equal(t, 7, item.ID)
	require.Len(t, store.Items(), 1)
	assert.Equal(t, created, store.Items()[0])
}

func TestStore_CreateFailureLeavesItemsUntouched(t *testing.T) {
	repo := &mocks.MockRepository[model.Activity]{
		CreateFunc: func(_ context.Context, _ any) (*model.Activity, error) {
			return nil, errors.New("rejected")
		},
	}
	store := activityStore(repo, nil)

	_, err := store.Create(context.Background(), model.ActivityCreate{Name: "X"})
	require.Error(t, err)
	assert.Empty(t, store.Items())
	assert.Error(t, store.Err())
}

func TestStore_CreateValidatesLocally(t *testing.T) {
	var called bool
	repo := &mocks.MockRepository[model.Activity]{
		CreateFunc: func(_ context.Context, _ any) (*model.Activity, error) {
			called = true
			return &model.Activity{}, nil
		},
	}
	store := activityStore(repo, nil)

	_, err := store.Create(context.Background(), model.ActivityCreate{})
	require.Error(t, err)
	assert.False(t, called, "invalid payload must not reach the network")
}

func TestStore_UpdateReplacesConfirmedEntry(t *testing.T) {
	repo := &mocks.MockRepository[model.Activity]{
		ListFunc: func(_ context.Context, _ map[string]string) ([]model.Activity, error) {
			return []model.Activity{{ID: 1, Name: "Old"}, {ID: 2, Name: "Other"}}, nil
		},
		UpdateFunc: func(_ context.Context, id int, _ any) (*model.Activity, error) {
			return &model.Activity{ID: id, Name: "New"}, nil
		},
	}
	store := activityStore(repo, nil)
	_, err := store.FetchAll(context.Background(), nil)
	require.NoError(t, err)

	_, err = store.Update(context.Background(), 1, map[string]string{"nome": "New"})
	require.NoError(t, err)

	items := store.Items()
	assert.Equal(t, "New", items[0].Name)
	assert.Equal(t, "Other", items[1].Name)
}

func TestStore_RemoveEvictsAfterConfirmation(t *testing.T) {
	deleteErr := errors.New("forbidden")
	repo := &mocks.MockRepository[model.Activity]{
		ListFunc: func(_ context.Context, _ map[string]string) ([]model.Activity, error) {
			return []model.Activity{{ID: 1}, {ID: 2}}, nil
		},
		DeleteFunc: func(_ context.Context, _ int) error { return deleteErr },
	}
	store := activityStore(repo, nil)
	_, err := store.FetchAll(context.Background(), nil)
	require.NoError(t, err)

	require.Error(t, store.Remove(context.Background(), 1))
	assert.Len(t, store.Items(), 2, "failed delete must not evict")

	repo.DeleteFunc = nil
	require.NoError(t, store.Remove(context.Background(), 1))
	require.Len(t, store.Items(), 1)
	assert.Equal(t, 2, store.Items()[0].ID)
}

func TestStore_UnfilteredFetchUsesCache(t *testing.T) {
	cache := mocks.NewMemoryCache()
	snapshot, _ := json.Marshal([]model.Activity{{ID: 9, Name: "Cached"}})
	require.NoError(t, cache.Set(context.Background(), "list:activities", snapshot, time.Minute))

	var listCalls int
	repo := &mocks.MockRepository[model.Activity]{
		ListFunc: func(_ context.Context, _ map[string]string) ([]model.Activity, error) {
			listCalls++
			return []model.Activity{{ID: 1, Name: "Fresh"}}, nil
		},
	}
	store := activityStore(repo, cache)

	items, err := store.FetchAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Cached", items[0].Name)
	assert.Zero(t, listCalls)

	// Filtered fetches bypass the snapshot.
	items, err = store.FetchAll(context.Background(), map[string]string{"area": "log"})
	require.NoError(t, err)
	assert.Equal(t, "Fresh", items[0].Name)
	assert.Equal(t, 1, listCalls)
}

func TestStore_FilteredFetchReplacesItems(t *testing.T) {
	cache := mocks.NewMemoryCache()
	repo := &mocks.MockRepository[model.Activity]{
		ListFunc: func(_ context.Context, query map[string]string) ([]model.Activity, error) {
			if query["area"] == "log" {
				return []model.Activity{{ID: 2, Name: "Magazzino"}}, nil
			}
			return []model.Activity{{ID: 1, Name: "Trasporto"}, {ID: 2, Name: "Magazzino"}}, nil
		},
	}
	store := activityStore(repo, cache)
	ctx := context.Background()

	_, err := store.FetchAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, store.Items(), 2)

	_, err = store.FetchAll(ctx, map[string]string{"area": "log"})
	require.NoError(t, err)
	require.Len(t, store.Items(), 1, "items must track the last fetch")
	assert.Equal(t, "Magazzino", store.Items()[0].Name)

	// A filtered response never overwrites the unfiltered snapshot.
	snapshot, err := cache.Get(ctx, "list:activities")
	require.NoError(t, err)
	var cached []model.Activity
	require.NoError(t, json.Unmarshal(snapshot, &cached))
	assert.Len(t, cached, 2)
}

func TestStore_MutationInvalidatesCache(t *testing.T) {
	cache := mocks.NewMemoryCache()
	repo := &mocks.MockRepository[model.Activity]{
		ListFunc: func(_ context.Context, _ map[string]string) ([]model.Activity, error) {
			return []model.Activity{{ID: 1, Name: "Trasporto"}}, nil
		},
		CreateFunc: func(_ context.Context, _ any) (*model.Activity, error) {
			return &model.Activity{ID: 2, Name: "Nuova"}, nil
		},
	}
	store := activityStore(repo, cache)
	ctx := context.Background()

	_, err := store.FetchAll(ctx, nil)
	require.NoError(t, err)
	cached, _ := cache.Get(ctx, "list:activities")
	require.NotNil(t, cached)

	_, err = store.Create(ctx, model.ActivityCreate{Name: "Nuova"})
	require.NoError(t, err)
	cached, _ = cache.Get(ctx, "list:activities")
	assert.Nil(t, cached, "mutation must drop the snapshot")
}
