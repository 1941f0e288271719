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

func TestWarmup_FetchesEverything(t *testing.T) {
	dir := &mocks.MockUserDirectory{
		WorkAreasFunc: func(context.Context) ([]model.WorkArea, error) {
			return []model.WorkArea{{ID: 1, Code: "log"}}, nil
		},
	}
	activities := &mocks.MockRepository[model.Activity]{
		ListFunc: func(context.Context, map[string]string) ([]model.Activity, error) {
			return []model.Activity{{ID: 1}}, nil
		},
	}
	shifts := &mocks.MockShiftSchedule{
		UpcomingFunc: func(_ context.Context, limit int) ([]model.Shift, error) {
			assert.Equal(t, 10, limit)
			return []model.Shift{{ID: 3, Title: "Mattina"}}, nil
		},
	}

	res, err := Warmup(context.Background(), WarmupOptions{
		Directory:  dir,
		Activities: activities,
		Shifts:     shifts,
		Todos:      &mocks.MockRepository[model.Todo]{},
	})
	require.NoError(t, err)
	assert.Len(t, res.WorkAreas, 1)
	assert.Len(t, res.Activities, 1)
	assert.Len(t, res.Upcoming, 1)
	assert.Empty(t, res.Todos)
}

func TestWarmup_OneFailureFailsAll(t *testing.T) {
	dir := &mocks.MockUserDirectory{
		WorkAreasFunc: func(context.Context) ([]model.WorkArea, error) {
			return nil, errors.New("unreachable")
		},
	}
	_, err := Warmup(context.Background(), WarmupOptions{
		Directory:  dir,
		Activities: &mocks.MockRepository[model.Activity]{},
		Shifts:     &mocks.MockShiftSchedule{},
		Todos:      &mocks.MockRepository[model.Todo]{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work areas")
}
