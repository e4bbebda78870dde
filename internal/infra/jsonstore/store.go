// Package jsonstore provides JSON file-based implementations of the record
// store and the project registry.
package jsonstore

import (
	"context"

	"github.com/runoshun/hourlog/internal/domain"
)

// recordsData represents the records file structure.
type recordsData struct {
	Records []domain.RawRecord `json:"records"`
}

// Store implements domain.RecordStore using a JSON file.
// Rows are kept as column-keyed objects, the same shape a spreadsheet row takes.
type Store struct {
	file *lockedFile[recordsData]
}

// New creates a new Store for the given file path.
// Initialize must be called before the first read or write.
func New(path string) *Store {
	return &Store{file: newLockedFile[recordsData](path, nil)}
}

// Append writes one record at the end of the log.
func (s *Store) Append(ctx context.Context, record domain.TimeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.file.withLockWrite(func(data *recordsData) error {
		data.Records = append(data.Records, record.Raw())
		return nil
	})
}

// Query returns the rows belonging to id, in log order.
func (s *Store) Query(ctx context.Context, id domain.Identifier) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []domain.RawRecord
	err := s.file.withLock(func(data *recordsData) error {
		for _, r := range data.Records {
			if id.Matches(r) {
				rows = append(rows, r)
			}
		}
		return nil
	})
	return rows, err
}

// All returns every row in log order.
func (s *Store) All(ctx context.Context) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []domain.RawRecord
	err := s.file.withLock(func(data *recordsData) error {
		rows = data.Records
		return nil
	})
	return rows, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	return s.file.exists()
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	return s.file.create(&recordsData{Records: []domain.RawRecord{}})
}

// Ensure Store implements the record ports.
var (
	_ domain.RecordStore      = (*Store)(nil)
	_ domain.RecordExporter   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
