package model

import (
	"errors"
	"fmt"
)

// BulkActionName identifies one of the batch mutations the API applies to
// a set of users.
type BulkActionName string

const (
	BulkActivate        BulkActionName = "activate"
	BulkDeactivate      BulkActionName = "deactivate"
	BulkDelete          BulkActionName = "delete"
	BulkAssignRole      BulkActionName = "assign_role"
	BulkSendCredentials BulkActionName = "send_credentials"
)

// Valid reports whether the action is one of the known values.
func (a BulkActionName) Valid() bool {
	switch a {
	case BulkActivate, BulkDeactivate, BulkDelete, BulkAssignRole, BulkSendCredentials:
		return true
	}
	return false
}

// BulkAction is the request applied to a selection of users. It is
// constructed at dispatch time and discarded after the server responds.
type BulkAction struct {
	UserIDs []int          `json:"user_ids"`
	Action  BulkActionName `json:"action"`

	// Role is required for assign_role and ignored otherwise.
	Role Role `json:"role,omitempty"`
}

// Validate enforces the dispatch preconditions: a non-empty target set, a
// known action, and a valid role when the action requires one.
func (b BulkAction) Validate() error {
	if len(b.UserIDs) == 0 {
		return errors.New("at least one target user is required")
	}
	if !b.Action.Valid() {
		return fmt.Errorf("invalid bulk action %q", b.Action)
	}
	if b.Action == BulkAssignRole && !b.Role.Valid() {
		return fmt.Errorf("assign_role requires a valid role, got %q", b.Role)
	}
	return nil
}

// BulkResult is the server's summary of a bulk mutation.
type BulkResult struct {
	Message      string `json:"message"`
	UpdatedCount int    `json:"updated_count,omitempty"`

	// Credential delivery summary, present for send_credentials.
	SuccessCount int      `json:"success_count,omitempty"`
	FailedCount  int      `json:"failed_count,omitempty"`
	FailedEmails []string `json:"failed_emails,omitempty"`
}
