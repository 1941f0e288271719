package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Activity is an area of recurring organizational work. The wire format
// keeps the backend's Italian field names.
type Activity struct {
	ID             int    `json:"id"`
	Name           string `json:"nome"`
	Description    string `json:"descrizione,omitempty"`
	Area           string `json:"area"`
	ColorHex       string `json:"colore_hex,omitempty"`
	EnrollmentLink string `json:"link_iscrizione,omitempty"`
	IsActive       bool   `json:"is_active"`
}

// ActivityCreate is the payload for creating or replacing an activity.
type ActivityCreate struct {
	Name           string `json:"nome"`
	Description    string `json:"descrizione,omitempty"`
	Area           string `json:"area"`
	ColorHex       string `json:"colore_hex,omitempty"`
	EnrollmentLink string `json:"link_iscrizione,omitempty"`
}

// Validate performs the local field checks that never reach the server.
func (r ActivityCreate) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("activity name is required")
	}
	if r.EnrollmentLink != "" {
		if err := validateLink(r.EnrollmentLink); err != nil {
			return err
		}
	}
	return nil
}

// Shift is a scheduled slot of an activity.
type Shift struct {
	ID             int    `json:"id"`
	ActivityID     int    `json:"attivita"`
	Title          string `json:"titolo"`
	Date           Date   `json:"data"`
	StartTime      string `json:"ora_inizio"`
	EndTime        string `json:"ora_fine"`
	Capacity       int    `json:"posti_disponibili"`
	EnrollmentLink string `json:"link_iscrizione,omitempty"`
	Notes          string `json:"note,omitempty"`
	IsActive       bool   `json:"is_active"`
}

// ShiftCreate is the payload for creating a shift.
type ShiftCreate struct {
	ActivityID     int    `json:"attivita"`
	Title          string `json:"titolo"`
	Date           Date   `json:"data"`
	StartTime      string `json:"ora_inizio"`
	EndTime        string `json:"ora_fine"`
	Capacity       int    `json:"posti_disponibili"`
	EnrollmentLink string `json:"link_iscrizione,omitempty"`
	Notes          string `json:"note,omitempty"`
}

// Validate performs the local field checks that never reach the server:
// required fields, time format, past date, negative capacity, and a
// well-formed enrollment link.
func (r ShiftCreate) Validate() error {
	if r.ActivityID <= 0 {
		return errors.New("activity is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("shift title is required")
	}
	if r.Date.IsZero() {
		return errors.New("shift date is required")
	}
	if r.Date.Before(Today()) {
		return fmt.Errorf("shift date %s is in the past", r.Date)
	}
	if err := validateClock(r.StartTime); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if err := validateClock(r.EndTime); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if r.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", r.Capacity)
	}
	if r.EnrollmentLink != "" {
		if err := validateLink(r.EnrollmentLink); err != nil {
			return err
		}
	}
	return nil
}

// ShiftFilter narrows shift list requests.
type ShiftFilter struct {
	ActivityID int
	From       Date
	To         Date
	Upcoming   bool
}

// Query renders the filter as request query parameters.
func (f ShiftFilter) Query() map[string]string {
	q := map[string]string{}
	if f.ActivityID > 0 {
		q["attivita"] = fmt.Sprintf("%d", f.ActivityID)
	}
	if !f.From.IsZero() {
		q["data_da"] = f.From.String()
	}
	if !f.To.IsZero() {
		q["data_a"] = f.To.String()
	}
	if f.Upcoming {
		q["upcoming"] = "true"
	}
	return q
}

func validateClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	return nil
}

func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("malformed enrollment link %q", link)
	}
	return nil
}
