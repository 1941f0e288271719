package model

import (
	"fmt"
	"strings"
)

// ImportHeader is the required CSV header for user bulk import.
// work_area_codes is a comma-separated list inside a single quoted field
// when multiple areas apply.
var ImportHeader = []string{
	"username", "email", "first_name", "last_name", "role", "phone", "work_area_codes",
}

// CandidateUser is one parsed row of an import preview: the account the
// server would create on confirm.
type CandidateUser struct {
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Role          Role     `json:"role"`
	Phone         string   `json:"phone,omitempty"`
	WorkAreaCodes []string `json:"work_area_codes,omitempty"`
}

// RowErrors collects the validation messages for one source row. Row
// numbering starts at 2, row 1 being the header.
type RowErrors struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

func (r RowErrors) String() string {
	return fmt.Sprintf("row %d: %v", r.Row, r.Errors)
}

// ImportPreview is the dry-run result of the preview endpoint. Rows and
// Errors are independent: a partial file yields both.
type ImportPreview struct {
	Rows   []CandidateUser `json:"preview"`
	Errors []RowErrors     `json:"errors"`
}

// Valid reports whether the preview allows a commit.
func (p ImportPreview) Valid() bool { return len(p.Errors) == 0 }

// ImportResult is the server's summary of a confirmed import.
type ImportResult struct {
	Message      string `json:"message"`
	CreatedCount int    `json:"created_count,omitempty"`

	// Credential delivery summary, present when send_credentials was set.
	EmailSuccessCount int      `json:"email_success_count,omitempty"`
	EmailFailedCount  int      `json:"email_failed_count,omitempty"`
	FailedEmails      []string `json:"failed_emails,omitempty"`
}

// ExportFilter narrows the CSV export endpoint.
type ExportFilter struct {
	Role              Role
	IsActiveVolunteer *bool
	WorkAreaIDs       []int
	Search            string
}

// Query renders the filter as request query parameters. The format key is
// always csv; the API also supports xlsx but the client does not expose it.
func (f ExportFilter) Query() map[string]string {
	q := map[string]string{"format": "csv"}
	if f.Role != "" {
		q["role"] = string(f.Role)
	}
	if f.IsActiveVolunteer != nil {
		q["is_active_volunteer"] = fmt.Sprintf("%t", *f.IsActiveVolunteer)
	}
	if f.Search != "" {
		q["search"] = f.Search
	}
	if len(f.WorkAreaIDs) > 0 {
		ids := make([]string, len(f.WorkAreaIDs))
		for i, id := range f.WorkAreaIDs {
			ids[i] = fmt.Sprintf("%d", id)
		}
		q["work_area_ids"] = strings.Join(ids, ",")
	}
	return q
}
