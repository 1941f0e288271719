package service

import "errors"

// Caller errors surfaced by the services before any network call is made.
var (
	// ErrBusy means a mutating call was attempted while another one is
	// still in flight. The first call wins; the caller retries after it
	// settles.
	ErrBusy = errors.New("another operation is in progress")

	// ErrEmptySelection means a bulk action was dispatched with no users
	// selected.
	ErrEmptySelection = errors.New("no users selected")

	// ErrValidationPending means an import commit was attempted while the
	// preview still reports row errors.
	ErrValidationPending = errors.New("import has unresolved validation errors")

	// ErrNoPreview means an import commit was attempted before a
	// successful preview.
	ErrNoPreview = errors.New("no import preview available")

	// ErrNoFile means a preview was requested before a file was selected.
	ErrNoFile = errors.New("no import file selected")

	// ErrNotLoggedIn means the operation needs an authenticated session.
	ErrNotLoggedIn = errors.New("not logged in")
)
