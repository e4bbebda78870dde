// Package export writes raw record rows in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/runoshun/hourlog/internal/domain"
	"gopkg.in/yaml.v3"
)

// Supported export formats.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

// Formats lists the supported formats in display order.
var Formats = []string{FormatCSV, FormatJSON, FormatJSONL, FormatYAML}

// row is one exported record. Field order follows domain.Columns.
type row struct {
	ID        string `json:"id" yaml:"id"`
	Timestamp string `json:"date_time" yaml:"date_time"`
	UserID    string `json:"user_id" yaml:"user_id"`
	Username  string `json:"username" yaml:"username"`
	Project   string `json:"project" yaml:"project"`
	Hours     string `json:"hours" yaml:"hours"`
	Comment   string `json:"comment" yaml:"comment"`
}

func toRow(r domain.RawRecord) row {
	return row{
		ID:        r.String(domain.ColumnID),
		Timestamp: r.String(domain.ColumnTimestamp),
		UserID:    r.String(domain.ColumnUserID),
		Username:  r.String(domain.ColumnUsername),
		Project:   r.String(domain.ColumnProject),
		Hours:     r.String(domain.ColumnHours),
		Comment:   r.String(domain.ColumnComment),
	}
}

func (r row) values() []string {
	return []string{r.ID, r.Timestamp, r.UserID, r.Username, r.Project, r.Hours, r.Comment}
}

// Write encodes records to w in the given format.
// Values are exported as stored; malformed rows are not dropped.
func Write(w io.Writer, format string, records []domain.RawRecord) error {
	rows := make([]row, len(records))
	for i, r := range records {
		rows[i] = toRow(r)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, r := range rows {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(domain.Columns); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write(r.values()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}
