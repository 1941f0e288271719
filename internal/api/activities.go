package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/volops/voladmin/internal/domain/model"
)

// ActivityRepo is the CRUD repository over /activities.
type ActivityRepo struct {
	resource[model.Activity]
}

// NewActivityRepo returns the activities surface of the client.
func NewActivityRepo(c *Client) *ActivityRepo {
	return &ActivityRepo{resource: resource[model.Activity]{c: c, base: "/activities"}}
}

// ByArea returns activities grouped by work area code.
func (r *ActivityRepo) ByArea(ctx context.Context) (map[string][]model.Activity, error) {
	var out map[string][]model.Activity
	err := r.c.do(ctx, request{method: http.MethodGet, path: "/activities/by_area/"}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpcomingShifts returns the next scheduled shifts of one activity.
func (r *ActivityRepo) UpcomingShifts(ctx context.Context, activityID int) ([]model.Shift, error) {
	body, err := r.c.doRaw(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/activities/%d/prossimi_turni/", activityID),
	})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Shift](body)
}

// ShiftRepo implements ports.ShiftSchedule over /activities/shifts.
type ShiftRepo struct {
	resource[model.Shift]
}

// NewShiftRepo returns the shifts surface of the client.
func NewShiftRepo(c *Client) *ShiftRepo {
	return &ShiftRepo{resource: resource[model.Shift]{c: c, base: "/activities/shifts"}}
}

// Calendar returns the shifts of one month for the calendar view.
func (r *ShiftRepo) Calendar(ctx context.Context, month time.Time) ([]model.Shift, error) {
	body, err := r.c.doRaw(ctx, request{
		method: http.MethodGet,
		path:   "/activities/shifts/calendario/",
		query: map[string]string{
			"anno": fmt.Sprintf("%d", month.Year()),
			"mese": fmt.Sprintf("%d", int(month.Month())),
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Shift](body)
}

// Upcoming returns the next shifts across all activities. limit <= 0
// leaves the page size to the server.
func (r *ShiftRepo) Upcoming(ctx context.Context, limit int) ([]model.Shift, error) {
	query := map[string]string{}
	if limit > 0 {
		query["limit"] = fmt.Sprintf("%d", limit)
	}
	body, err := r.c.doRaw(ctx, request{
		method: http.MethodGet,
		path:   "/activities/shifts/prossimi/",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Shift](body)
}

// Today returns today's shifts.
func (r *ShiftRepo) Today(ctx context.Context) ([]model.Shift, error) {
	body, err := r.c.doRaw(ctx, request{method: http.MethodGet, path: "/activities/shifts/oggi/"})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Shift](body)
}
