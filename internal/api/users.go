package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/ports"
)

// UserRepo implements ports.UserDirectory: user CRUD plus the bulk,
// import/export and work-area endpoints under /auth.
type UserRepo struct {
	resource[model.User]
}

// NewUserRepo returns the user-management surface of the client.
func NewUserRepo(c *Client) *UserRepo {
	return &UserRepo{resource: resource[model.User]{c: c, base: "/auth/users"}}
}

// BulkAction applies one batch mutation to a set of users.
func (r *UserRepo) BulkAction(ctx context.Context, action model.BulkAction) (*model.BulkResult, error) {
	var out model.BulkResult
	err := r.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/bulk-actions/",
		body:   action,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportPreview dry-runs a CSV import and returns the candidate rows and
// per-row validation errors.
func (r *UserRepo) ImportPreview(ctx context.Context, file ports.ImportFile) (*model.ImportPreview, error) {
	var out model.ImportPreview
	if err := r.c.do(ctx, importRequest("/auth/import/preview/", file), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportConfirm creates the accounts from a previously previewed CSV.
func (r *UserRepo) ImportConfirm(ctx context.Context, file ports.ImportFile) (*model.ImportResult, error) {
	var out model.ImportResult
	if err := r.c.do(ctx, importRequest("/auth/import/confirm/", file), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func importRequest(path string, file ports.ImportFile) request {
	return request{
		method: http.MethodPost,
		path:   path,
		files:  []formFile{{field: "file", name: file.Name, content: file.Content}},
		fields: map[string]string{
			"send_credentials": fmt.Sprintf("%t", file.SendCredentials),
		},
	}
}

// Export downloads the filtered user list as CSV bytes.
func (r *UserRepo) Export(ctx context.Context, filter model.ExportFilter) ([]byte, error) {
	return r.c.doRaw(ctx, request{
		method: http.MethodGet,
		path:   "/auth/export/",
		query:  filter.Query(),
	})
}

// Restore undeletes a soft-deleted user. Superadmin only.
func (r *UserRepo) Restore(ctx context.Context, id int) error {
	return r.c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/auth/users/%d/restore/", id),
	}, nil)
}

// WorkAreas lists the reference work areas.
func (r *UserRepo) WorkAreas(ctx context.Context) ([]model.WorkArea, error) {
	body, err := r.c.doRaw(ctx, request{method: http.MethodGet, path: "/auth/work-areas/"})
	if err != nil {
		return nil, err
	}
	return decodeList[model.WorkArea](body)
}
