package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHoursInput(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
		want    float64
	}{
		{name: "integer", input: "4", want: 4},
		{name: "decimal point", input: "1.5", want: 1.5},
		{name: "decimal comma", input: "2,5", want: 2.5},
		{name: "surrounding space", input: "  3 ", want: 3},
		{name: "fraction", input: "0.25", want: 0.25},
		{name: "letters", input: "abc", wantErr: ErrInvalidHours},
		{name: "empty", input: "", wantErr: ErrInvalidHours},
		{name: "blank", input: "  ", wantErr: ErrInvalidHours},
		{name: "unit suffix", input: "2h", wantErr: ErrInvalidHours},
		{name: "nan", input: "NaN", wantErr: ErrInvalidHours},
		{name: "infinity", input: "Inf", wantErr: ErrInvalidHours},
		{name: "zero", input: "0", wantErr: ErrNonPositiveHours},
		{name: "negative", input: "-1", wantErr: ErrNonPositiveHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHoursInput(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidationError(err))
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession("42")
	s.State = StateEnterComment
	s.StatsFilter = "Website"
	s.Draft = Draft{ProjectID: 1, ProjectName: "Website", Hours: 2}

	s.ClearDraft()
	assert.True(t, s.Draft.IsEmpty())
	assert.Equal(t, "Website", s.StatsFilter)
	assert.Equal(t, StateEnterComment, s.State)

	s.Reset()
	assert.Equal(t, StateMenuIdle, s.State)
	assert.Empty(t, s.StatsFilter)
	assert.Equal(t, "42", s.UserID)
}

func TestDraft_IsComplete(t *testing.T) {
	d := Draft{ProjectID: 1, ProjectName: "Website"}
	assert.True(t, d.HasProject())
	assert.False(t, d.IsComplete())

	d.Hours = 1
	assert.False(t, d.IsComplete())

	d.Comment = NoCommentText
	assert.True(t, d.IsComplete())
}

func TestSession_IsIdle(t *testing.T) {
	tests := []struct {
		session *Session
		name    string
		want    bool
	}{
		{name: "new", session: NewSession("1"), want: true},
		{name: "collecting", session: &Session{State: StateEnterHours}, want: false},
		{name: "draft left", session: &Session{State: StateMenuIdle, Draft: Draft{ProjectID: 1, ProjectName: "Website"}}, want: false},
		{name: "stats filter", session: &Session{State: StateMenuIdle, StatsFilter: "Website"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.IsIdle())
		})
	}
}
