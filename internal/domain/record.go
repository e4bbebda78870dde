package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the fixed format of the date/time column.
const TimestampLayout = "2006-01-02 15:04:05"

// Column names of a stored record row.
const (
	ColumnID        = "id"
	ColumnTimestamp = "date/time"
	ColumnUserID    = "user_id"
	ColumnUsername  = "username"
	ColumnProject   = "project"
	ColumnHours     = "hours"
	ColumnComment   = "comment"
)

// Columns lists the record columns in storage order.
var Columns = []string{
	ColumnID,
	ColumnTimestamp,
	ColumnUserID,
	ColumnUsername,
	ColumnProject,
	ColumnHours,
	ColumnComment,
}

// NoCommentText is stored when the user explicitly skips the comment.
const NoCommentText = "No comment"

// TimeRecord is a single completed time entry. Records are immutable once appended.
// Fields are ordered to minimize memory padding.
type TimeRecord struct {
	Timestamp   time.Time
	ID          string
	UserID      string
	Username    string
	ProjectName string
	Comment     string
	Hours       float64
}

// RecordID builds the record identifier: <user_id>_<unix millis>.
func RecordID(userID string, at time.Time) string {
	return fmt.Sprintf("%s_%d", userID, at.UnixMilli())
}

// Validate checks the write invariant: project, positive hours and a comment.
func (r TimeRecord) Validate() error {
	if strings.TrimSpace(r.ProjectName) == "" {
		return ErrMissingProject
	}
	if math.IsNaN(r.Hours) || math.IsInf(r.Hours, 0) || r.Hours <= 0 {
		return ErrNonPositiveHours
	}
	if r.Comment == "" {
		return ErrMissingComment
	}
	return nil
}

// Row returns the record as an ordered row of strings matching Columns.
func (r TimeRecord) Row() []string {
	return []string{
		r.ID,
		r.Timestamp.Format(TimestampLayout),
		r.UserID,
		r.Username,
		r.ProjectName,
		strconv.FormatFloat(r.Hours, 'f', 2, 64),
		r.Comment,
	}
}

// Raw returns the record in its loosely typed query form.
func (r TimeRecord) Raw() RawRecord {
	row := r.Row()
	raw := make(RawRecord, len(Columns))
	for i, col := range Columns {
		raw[col] = row[i]
	}
	return raw
}

// RawRecord is a record as returned by a store query. Values are loosely typed
// and may be missing or malformed; consumers must parse them tolerantly.
type RawRecord map[string]any

// String returns the column value in string form, or "" when absent.
func (r RawRecord) String(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

// Timestamp parses the date/time column in loc. ok is false when it is missing
// or malformed.
func (r RawRecord) Timestamp(loc *time.Location) (time.Time, bool) {
	s, isString := r[ColumnTimestamp].(string)
	if !isString || s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TimestampLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RecordFromRaw parses a stored row back into a TimeRecord, reading the
// timestamp in loc. A missing id is rebuilt from the user id and timestamp.
// Rows that fail TimeRecord.Validate are reported as ErrMalformedRecord.
func RecordFromRaw(r RawRecord, loc *time.Location) (TimeRecord, error) {
	ts, ok := r.Timestamp(loc)
	if !ok {
		return TimeRecord{}, fmt.Errorf("%w: bad %s %q", ErrMalformedRecord, ColumnTimestamp, r.String(ColumnTimestamp))
	}
	hours, ok := ParseRecordHours(r[ColumnHours])
	if !ok {
		return TimeRecord{}, fmt.Errorf("%w: bad %s %q", ErrMalformedRecord, ColumnHours, r.String(ColumnHours))
	}
	rec := TimeRecord{
		Timestamp:   ts,
		ID:          r.String(ColumnID),
		UserID:      r.String(ColumnUserID),
		Username:    r.String(ColumnUsername),
		ProjectName: r.String(ColumnProject),
		Comment:     r.String(ColumnComment),
		Hours:       hours,
	}
	if rec.ID == "" {
		rec.ID = RecordID(rec.UserID, ts)
	}
	if err := rec.Validate(); err != nil {
		return TimeRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return rec, nil
}

// Identifier selects the records of one user. Username wins when set;
// otherwise the numeric user id column is matched.
type Identifier struct {
	Username string
	UserID   string
}

// IdentifierFor builds the query identifier for a user, mirroring how records
// are attributed: by username when the user has one, else by numeric id.
func IdentifierFor(userID, username string) Identifier {
	if username != "" && !strings.HasPrefix(username, "id_") {
		return Identifier{Username: username}
	}
	return Identifier{UserID: userID}
}

// Matches reports whether the raw record belongs to the identifier.
func (id Identifier) Matches(r RawRecord) bool {
	if id.Username != "" {
		return r.String(ColumnUsername) == id.Username
	}
	return r.String(ColumnUserID) == id.UserID
}

// DisplayUsername returns the username stored with records: the handle when
// present, else "id_<user id>".
func DisplayUsername(userID, username string) string {
	if username != "" {
		return username
	}
	return "id_" + userID
}
