package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRecords() []domain.RawRecord {
	rec := domain.TimeRecord{
		ID:          "42_1715351400000",
		Timestamp:   time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
		UserID:      "42",
		Username:    "alice",
		ProjectName: "Website",
		Hours:       1.5,
		Comment:     "layout, fixes",
	}
	return []domain.RawRecord{
		rec.Raw(),
		{domain.ColumnProject: "Legacy", domain.ColumnHours: 2.0},
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleRecords()))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "42_1715351400000", got[0]["id"])
	assert.Equal(t, "2024-05-10 14:30:00", got[0]["date_time"])
	assert.Equal(t, "1.50", got[0]["hours"])
	assert.Equal(t, "Legacy", got[1]["project"])
	assert.Equal(t, "2", got[1]["hours"])
	assert.Equal(t, "", got[1]["username"])
}

func TestWrite_JSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSONL, sampleRecords()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], `{"id":"42_1715351400000","date_time":`))
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleRecords()))

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0]["username"])
	assert.Equal(t, "layout, fixes", got[0]["comment"])
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.Columns, rows[0])
	assert.Equal(t, []string{"42_1715351400000", "2024-05-10 14:30:00", "42", "alice", "Website", "1.50", "layout, fixes"}, rows[1])
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, "xml", sampleRecords())
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Empty(t, buf.String())
}
