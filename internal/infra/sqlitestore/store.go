// Package sqlitestore provides a SQLite implementation of the record store.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/hourlog/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT NOT NULL,
	date_time TEXT NOT NULL,
	user_id   TEXT NOT NULL,
	username  TEXT NOT NULL,
	project   TEXT NOT NULL,
	hours     TEXT NOT NULL,
	comment   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS records_username ON records (username);
CREATE INDEX IF NOT EXISTS records_user_id ON records (user_id);
`

const selectColumns = "SELECT id, date_time, user_id, username, project, hours, comment FROM records"

// Store implements domain.RecordStore on a SQLite table.
// Values are stored in their row text form so queries return the same
// loosely typed rows as the other backends.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; in-memory databases are per connection.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Initialize creates the records table if it doesn't exist.
func (s *Store) Initialize() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append writes one record at the end of the log.
func (s *Store) Append(ctx context.Context, record domain.TimeRecord) error {
	row := record.Row()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO records (id, date_time, user_id, username, project, hours, comment) VALUES (?, ?, ?, ?, ?, ?, ?)",
		row[0], row[1], row[2], row[3], row[4], row[5], row[6],
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Query returns the rows belonging to id, in log order.
func (s *Store) Query(ctx context.Context, id domain.Identifier) ([]domain.RawRecord, error) {
	if id.Username != "" {
		return s.query(ctx, selectColumns+" WHERE username = ? ORDER BY seq", id.Username)
	}
	return s.query(ctx, selectColumns+" WHERE user_id = ? ORDER BY seq", id.UserID)
}

// All returns every row in log order.
func (s *Store) All(ctx context.Context) ([]domain.RawRecord, error) {
	return s.query(ctx, selectColumns+" ORDER BY seq")
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]domain.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []domain.RawRecord
	for rows.Next() {
		values := make([]sql.NullString, len(domain.Columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		rec := make(domain.RawRecord, len(domain.Columns))
		for i, col := range domain.Columns {
			if values[i].Valid {
				rec[col] = values[i].String
			}
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return out, nil
}

// Ensure Store implements the record ports.
var (
	_ domain.RecordStore      = (*Store)(nil)
	_ domain.RecordExporter   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
