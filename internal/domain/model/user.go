package model

// Package model contains domain-level types mirroring the remote API's wire
// representations. It is pure and free of transport/adapter concerns.

import (
	"errors"
	"fmt"
	"strings"
)

// Role represents a user's authorization role. Keep string form for easy
// persistence and wire round-trips. Valid values are defined below.
type Role string

const (
	RoleBase       Role = "base"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Roles lists the known role values in ascending privilege order.
func Roles() []Role { return []Role{RoleBase, RoleAdmin, RoleSuperAdmin} }

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	switch r {
	case RoleBase, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q (valid: base, admin, superadmin)", s)
	}
	return r, nil
}

// WorkArea is an organizational tag restricting which activities and
// documents a non-superadmin administrator may manage. Read-only reference
// data from the client's perspective.
type WorkArea struct {
	ID    int    `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// User is the server-owned volunteer account record; the client holds a
// read/write cache of it.
type User struct {
	ID                int        `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	FullName          string     `json:"full_name,omitempty"`
	Role              Role       `json:"role"`
	Phone             string     `json:"phone,omitempty"`
	IsActiveVolunteer bool       `json:"is_active_volunteer"`
	JoinedDate        Date       `json:"joined_date,omitzero"`
	WorkAreas         []WorkArea `json:"work_areas,omitempty"`
}

// DisplayName returns the user's full name, falling back to the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}

// UserCreate is the payload for creating a user. WorkAreaIDs maps to the
// write-only work_area_ids field of the API.
type UserCreate struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Role              Role   `json:"role,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Password          string `json:"password,omitempty"`
	IsActiveVolunteer *bool  `json:"is_active_volunteer,omitempty"`
	JoinedDate        Date   `json:"joined_date,omitzero"`
	WorkAreaIDs       []int  `json:"work_area_ids,omitempty"`
}

// Validate performs the local field checks that never reach the server.
func (r UserCreate) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("invalid email %q", r.Email)
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return errors.New("last name is required")
	}
	if r.Role != "" && !r.Role.Valid() {
		return fmt.Errorf("invalid role %q", r.Role)
	}
	return nil
}

// UserUpdate is a partial patch for an existing user. Nil fields are
// omitted from the request body and left untouched by the server.
type UserUpdate struct {
	Email             *string `json:"email,omitempty"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Role              *Role   `json:"role,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	IsActiveVolunteer *bool   `json:"is_active_volunteer,omitempty"`
	WorkAreaIDs       []int   `json:"work_area_ids,omitempty"`
}

// Validate performs local field checks on the patch.
func (r UserUpdate) Validate() error {
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		return fmt.Errorf("invalid email %q", *r.Email)
	}
	if r.Role != nil && !r.Role.Valid() {
		return fmt.Errorf("invalid role %q", *r.Role)
	}
	return nil
}

// UserFilter narrows user list requests.
type UserFilter struct {
	Search            string
	Role              Role
	IsActiveVolunteer *bool
	WorkAreaID        int
}

// Query renders the filter as request query parameters.
func (f UserFilter) Query() map[string]string {
	q := map[string]string{}
	if f.Search != "" {
		q["search"] = f.Search
	}
	if f.Role != "" {
		q["role"] = string(f.Role)
	}
	if f.IsActiveVolunteer != nil {
		q["is_active_volunteer"] = fmt.Sprintf("%t", *f.IsActiveVolunteer)
	}
	if f.WorkAreaID > 0 {
		q["work_area"] = fmt.Sprintf("%d", f.WorkAreaID)
	}
	return q
}

// PasswordChange is the payload for the change-password endpoint.
type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
