package domain

import (
	"math"
	"strconv"
	"strings"
)

// Draft holds the fields of a time entry collected so far.
// Fields are ordered to minimize memory padding.
type Draft struct {
	ProjectName string
	Comment     string
	Hours       float64
	ProjectID   int
}

// HasProject returns true once a project has been chosen.
func (d Draft) HasProject() bool {
	return d.ProjectID > 0 && d.ProjectName != ""
}

// IsComplete returns true if the draft satisfies the record write invariant.
func (d Draft) IsComplete() bool {
	return d.HasProject() && d.Hours > 0 && d.Comment != ""
}

// IsEmpty returns true if nothing has been collected.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Session is the per-user conversation state kept between turns.
// Fields are ordered to minimize memory padding.
type Session struct {
	UserID      string
	Username    string
	State       DialogState
	StatsFilter string // Project name statistics are restricted to ("" = all)
	Draft       Draft
}

// NewSession returns an idle session for a user.
func NewSession(userID string) *Session {
	return &Session{UserID: userID, State: StateMenuIdle}
}

// IsIdle returns true if the session holds nothing worth keeping between turns.
func (s *Session) IsIdle() bool {
	return s.State == StateMenuIdle && s.Draft.IsEmpty() && s.StatsFilter == ""
}

// Reset clears every session-scoped field and returns to the main menu.
func (s *Session) Reset() {
	s.Draft = Draft{}
	s.StatsFilter = ""
	s.State = StateMenuIdle
}

// ClearDraft drops the in-progress entry but keeps the statistics filter.
func (s *Session) ClearDraft() {
	s.Draft = Draft{}
}

// ParseHoursInput validates hours typed by a user. A decimal comma is accepted.
// The result is always a finite number greater than zero.
func ParseHoursInput(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if normalized == "" {
		return 0, ErrInvalidHours
	}
	hours, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, ErrInvalidHours
	}
	if hours <= 0 {
		return 0, ErrNonPositiveHours
	}
	return hours, nil
}
