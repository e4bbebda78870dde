package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRecord_Row(t *testing.T) {
	at := time.Date(2024, 5, 10, 9, 5, 7, 0, time.UTC)
	r := TimeRecord{
		ID:          RecordID("42", at),
		Timestamp:   at,
		UserID:      "42",
		Username:    "alice",
		ProjectName: "Website",
		Hours:       2.5,
		Comment:     "Landing page",
	}

	assert.Equal(t, []string{"42_1715331907000", "2024-05-10 09:05:07", "42", "alice", "Website", "2.50", "Landing page"}, r.Row())

	raw := r.Raw()
	assert.Equal(t, "Website", raw.String(ColumnProject))
	ts, ok := raw.Timestamp(time.UTC)
	assert.True(t, ok)
	assert.True(t, ts.Equal(at))
}

func TestTimeRecord_Validate(t *testing.T) {
	valid := TimeRecord{ProjectName: "Website", Hours: 1, Comment: NoCommentText}
	assert.NoError(t, valid.Validate())

	r := valid
	r.ProjectName = " "
	assert.ErrorIs(t, r.Validate(), ErrMissingProject)

	r = valid
	r.Hours = 0
	assert.ErrorIs(t, r.Validate(), ErrNonPositiveHours)

	r = valid
	r.Comment = ""
	assert.ErrorIs(t, r.Validate(), ErrMissingComment)
}

func TestRawRecord_String(t *testing.T) {
	r := RawRecord{"a": "x", "b": 2.5, "c": 3, "d": int64(4), "e": nil}
	assert.Equal(t, "x", r.String("a"))
	assert.Equal(t, "2.5", r.String("b"))
	assert.Equal(t, "3", r.String("c"))
	assert.Equal(t, "4", r.String("d"))
	assert.Equal(t, "", r.String("e"))
	assert.Equal(t, "", r.String("missing"))
}

func TestIdentifierFor(t *testing.T) {
	assert.Equal(t, Identifier{Username: "alice"}, IdentifierFor("42", "alice"))
	assert.Equal(t, Identifier{UserID: "42"}, IdentifierFor("42", ""))
	assert.Equal(t, Identifier{UserID: "42"}, IdentifierFor("42", "id_42"))

	assert.Equal(t, "id_42", DisplayUsername("42", ""))
	assert.Equal(t, "alice", DisplayUsername("42", "alice"))

	byName := Identifier{Username: "alice"}
	assert.True(t, byName.Matches(RawRecord{ColumnUsername: "alice", ColumnUserID: "1"}))
	assert.False(t, byName.Matches(RawRecord{ColumnUsername: "bob", ColumnUserID: "42"}))

	byID := Identifier{UserID: "42"}
	assert.True(t, byID.Matches(RawRecord{ColumnUserID: 42}))
	assert.True(t, byID.Matches(RawRecord{ColumnUserID: "42"}))
}

func TestRecordFromRaw(t *testing.T) {
	rec := TimeRecord{
		ID:          "42_1715351400000",
		Timestamp:   time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
		UserID:      "42",
		Username:    "alice",
		ProjectName: "Website",
		Hours:       1.5,
		Comment:     "fixes",
	}

	got, err := RecordFromRaw(rec.Raw(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRecordFromRaw_RebuildsMissingID(t *testing.T) {
	raw := RawRecord{
		ColumnTimestamp: "2024-05-10 14:30:00",
		ColumnUserID:    "7",
		ColumnProject:   "Website",
		ColumnHours:     2.0,
		ColumnComment:   NoCommentText,
	}

	got, err := RecordFromRaw(raw, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "7_1715351400000", got.ID)
	assert.Equal(t, 2.0, got.Hours)
}

func TestRecordFromRaw_Malformed(t *testing.T) {
	base := func() RawRecord {
		return RawRecord{
			ColumnTimestamp: "2024-05-10 14:30:00",
			ColumnProject:   "Website",
			ColumnHours:     "1.00",
			ColumnComment:   "x",
		}
	}
	tests := []struct {
		name   string
		mutate func(RawRecord)
	}{
		{"bad timestamp", func(r RawRecord) { r[ColumnTimestamp] = "yesterday" }},
		{"missing hours", func(r RawRecord) { delete(r, ColumnHours) }},
		{"zero hours", func(r RawRecord) { r[ColumnHours] = "0" }},
		{"missing project", func(r RawRecord) { r[ColumnProject] = "" }},
		{"missing comment", func(r RawRecord) { delete(r, ColumnComment) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := base()
			tt.mutate(raw)
			_, err := RecordFromRaw(raw, time.UTC)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}
