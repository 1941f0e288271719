package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/volops/voladmin/internal/domain/model"
)

// TodoRepo is the CRUD repository over /segreteria/todos, plus the board
// endpoints.
type TodoRepo struct {
	resource[model.Todo]
}

// NewTodoRepo returns the secretarial to-do surface of the client.
func NewTodoRepo(c *Client) *TodoRepo {
	return &TodoRepo{resource: resource[model.Todo]{c: c, base: "/segreteria/todos"}}
}

// Board returns the to-do items grouped by status column.
func (r *TodoRepo) Board(ctx context.Context) (map[model.TodoStatus][]model.Todo, error) {
	var out map[model.TodoStatus][]model.Todo
	err := r.c.do(ctx, request{method: http.MethodGet, path: "/segreteria/todos/bacheca/"}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Mine returns the items assigned to the authenticated user.
func (r *TodoRepo) Mine(ctx context.Context) ([]model.Todo, error) {
	body, err := r.c.doRaw(ctx, request{method: http.MethodGet, path: "/segreteria/todos/miei/"})
	if err != nil {
		return nil, err
	}
	return decodeList[model.Todo](body)
}

// MarkDone moves one item to the done column.
func (r *TodoRepo) MarkDone(ctx context.Context, id int) (*model.Todo, error) {
	var out model.Todo
	err := r.c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/segreteria/todos/%d/mark_done/", id),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DocumentRepo implements ports.DocumentLibrary over /segreteria/documents.
type DocumentRepo struct {
	resource[model.Document]
}

// NewDocumentRepo returns the document library surface of the client.
func NewDocumentRepo(c *Client) *DocumentRepo {
	return &DocumentRepo{resource: resource[model.Document]{c: c, base: "/segreteria/documents"}}
}

// Upload creates a document with its file as multipart content.
func (r *DocumentRepo) Upload(
	ctx context.Context,
	meta model.DocumentUpload,
	name string,
	content []byte,
) (*model.Document, error) {
	fields := map[string]string{
		"titolo": meta.Title,
	}
	if meta.Description != "" {
		fields["descrizione"] = meta.Description
	}
	if meta.Category != "" {
		fields["categoria"] = string(meta.Category)
	}
	if meta.Visibility != "" {
		fields["visibile_a"] = string(meta.Visibility)
	}

	var out model.Document
	err := r.c.do(ctx, request{
		method: http.MethodPost,
		path:   "/segreteria/documents/",
		files:  []formFile{{field: "file", name: name, content: content}},
		fields: fields,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches the document's file content. The metadata carries the
// file URL; an empty one means no file is attached.
func (r *DocumentRepo) Download(ctx context.Context, id int) ([]byte, error) {
	doc, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.FileURL == "" {
		return nil, fmt.Errorf("document %d has no file attached", id)
	}
	return r.c.doRaw(ctx, request{method: http.MethodGet, path: doc.FileURL})
}
