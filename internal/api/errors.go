package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors surfaced by the client. ErrSessionExpired means the
// refresh attempt failed and the persisted session has been cleared; the
// caller must log in again.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired, please log in again")
	ErrNotFound         = errors.New("resource not found")
)

// ErrorKind distinguishes the two response body shapes the backend emits
// for failed requests.
type ErrorKind string

const (
	// KindMessage is a single human-readable message ({"detail": ...} or
	// {"error": ...}).
	KindMessage ErrorKind = "message"
	// KindFields is a field-name to messages map from serializer
	// validation.
	KindFields ErrorKind = "fields"
)

// Error is a decoded API failure.
type Error struct {
	Status  int
	Kind    ErrorKind
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Kind == KindFields && len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
		}
		return fmt.Sprintf("validation failed (%d): %s", e.Status, strings.Join(parts, ", "))
	}
	if e.Message != "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// FieldErrors returns the messages for one field, or nil.
func (e *Error) FieldErrors(name string) []string {
	if e.Kind != KindFields {
		return nil
	}
	return e.Fields[name]
}

// decodeError converts a non-2xx response body into an *Error. Bodies are
// either {"detail"/"error"/"message": "..."} or a field->messages object;
// anything undecodable falls back to a bare status error.
func decodeError(status int, body []byte) error {
	apiErr := &Error{Status: status, Kind: KindMessage}
	if status == http.StatusNotFound {
		apiErr.Message = ErrNotFound.Error()
	}
	if len(body) == 0 {
		return apiErr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	for _, key := range []string{"detail", "error", "message"} {
		if msg, ok := raw[key]; ok {
			var s string
			if err := json.Unmarshal(msg, &s); err == nil {
				apiErr.Message = s
				return apiErr
			}
		}
	}

	fields := make(map[string][]string, len(raw))
	for name, val := range raw {
		var msgs []string
		if err := json.Unmarshal(val, &msgs); err == nil {
			fields[name] = msgs
			continue
		}
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			fields[name] = []string{single}
		}
	}
	if len(fields) > 0 {
		apiErr.Kind = KindFields
		apiErr.Fields = fields
	}
	return apiErr
}
