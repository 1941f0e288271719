package model

import (
	"errors"
	"fmt"
	"strings"
)

// TodoStatus is the kanban column a secretarial to-do item sits in.
type TodoStatus string

const (
	TodoStatusOpen       TodoStatus = "todo"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusDone       TodoStatus = "done"
)

// Valid reports whether the status is one of the known columns.
func (s TodoStatus) Valid() bool {
	switch s {
	case TodoStatusOpen, TodoStatusInProgress, TodoStatusDone:
		return true
	}
	return false
}

// TodoPriority orders items within a board column.
type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

// Valid reports whether the priority is a known value.
func (p TodoPriority) Valid() bool {
	switch p {
	case TodoPriorityLow, TodoPriorityMedium, TodoPriorityHigh:
		return true
	}
	return false
}

// Todo is a secretarial to-do item shown on the bacheca board.
type Todo struct {
	ID          int          `json:"id"`
	Title       string       `json:"titolo"`
	Description string       `json:"descrizione,omitempty"`
	Status      TodoStatus   `json:"status"`
	Priority    TodoPriority `json:"priorita"`
	AssigneeID  int          `json:"assegnato_a,omitempty"`
}

// TodoCreate is the payload for creating or patching a to-do item.
type TodoCreate struct {
	Title       string       `json:"titolo"`
	Description string       `json:"descrizione,omitempty"`
	Status      TodoStatus   `json:"status,omitempty"`
	Priority    TodoPriority `json:"priorita,omitempty"`
	AssigneeID  int          `json:"assegnato_a,omitempty"`
}

// Validate performs the local field checks that never reach the server.
func (r TodoCreate) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("todo title is required")
	}
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("invalid status %q", r.Status)
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", r.Priority)
	}
	return nil
}

// DocumentCategory classifies stored documents.
type DocumentCategory string

const (
	DocumentOrgChart   DocumentCategory = "organigramma"
	DocumentGuide      DocumentCategory = "guida"
	DocumentTemplate   DocumentCategory = "modulo"
	DocumentRegulation DocumentCategory = "regolamento"
	DocumentMinutes    DocumentCategory = "verbale"
	DocumentOther      DocumentCategory = "altro"
)

// DocumentVisibility restricts who may see a document.
type DocumentVisibility string

const (
	VisibilityAll         DocumentVisibility = "tutti"
	VisibilityAdmin       DocumentVisibility = "admin"
	VisibilitySecretariat DocumentVisibility = "segreteria"
)

// Document is a stored file in the secretarial document section. The file
// itself is uploaded as multipart content; Document carries its metadata.
type Document struct {
	ID          int                `json:"id"`
	Title       string             `json:"titolo"`
	Description string             `json:"descrizione,omitempty"`
	Category    DocumentCategory   `json:"categoria"`
	Visibility  DocumentVisibility `json:"visibile_a"`
	FileURL     string             `json:"file_url,omitempty"`
	FileExt     string             `json:"file_extension,omitempty"`
	FileSizeMB  float64            `json:"file_size_mb,omitempty"`
	UploadedBy  string             `json:"uploaded_by_name,omitempty"`
}

// DocumentUpload carries the metadata accompanying a document upload.
type DocumentUpload struct {
	Title       string
	Description string
	Category    DocumentCategory
	Visibility  DocumentVisibility
}

// Validate performs the local field checks that never reach the server.
func (r DocumentUpload) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("document title is required")
	}
	return nil
}
