package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/ports"
)

// WarmupOptions groups dependencies for Warmup.
type WarmupOptions struct {
	Directory  ports.UserDirectory
	Activities ports.ResourceRepository[model.Activity]
	Shifts     ports.ShiftSchedule
	Todos      ports.ResourceRepository[model.Todo]
	Logger     *slog.Logger
}

// WarmupResult carries the reference data fetched in one parallel pass.
type WarmupResult struct {
	WorkAreas  []model.WorkArea
	Activities []model.Activity
	Upcoming   []model.Shift
	Todos      []model.Todo
}

// Warmup prefetches the reference data every admin screen needs, in
// parallel. One failing fetch fails the whole warmup.
func Warmup(ctx context.Context, opts WarmupOptions) (*WarmupResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var res WarmupResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		areas, err := opts.Directory.WorkAreas(gctx)
		if err != nil {
			return fmt.Errorf("work areas: %w", err)
		}
		res.WorkAreas = areas
		return nil
	})
	g.Go(func() error {
		activities, err := opts.Activities.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("activities: %w", err)
		}
		res.Activities = activities
		return nil
	})
	g.Go(func() error {
		shifts, err := opts.Shifts.Upcoming(gctx, 10)
		if err != nil {
			return fmt.Errorf("upcoming shifts: %w", err)
		}
		res.Upcoming = shifts
		return nil
	})
	g.Go(func() error {
		todos, err := opts.Todos.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("todos: %w", err)
		}
		res.Todos = todos
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("reference data warmed up",
		"work_areas", len(res.WorkAreas),
		"activities", len(res.Activities),
		"upcoming_shifts", len(res.Upcoming),
		"todos", len(res.Todos))
	return &res, nil
}
