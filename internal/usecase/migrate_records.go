package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/runoshun/hourlog/internal/domain"
)

// MigrateRecordsInput contains parameters for MigrateRecords.
type MigrateRecordsInput struct {
	// Location is used to read stored timestamps (default: time.Local).
	Location *time.Location

	// Strict fails the migration on the first malformed source row.
	// If false, malformed rows are counted in Invalid and left behind.
	Strict bool
}

// MigrateRecordsOutput contains migration results.
type MigrateRecordsOutput struct {
	Total    int
	Migrated int
	Skipped  int // Already present in the destination
	Invalid  int // Malformed rows left behind
}

// MigrateRecords copies every record from one store backend to another.
type MigrateRecords struct {
	source   domain.RecordExporter
	dest     domain.RecordStore
	destInit domain.StoreInitializer
	logger   domain.Logger
}

// NewMigrateRecords creates a new MigrateRecords use case.
func NewMigrateRecords(source domain.RecordExporter, dest domain.RecordStore, destInit domain.StoreInitializer, logger domain.Logger) *MigrateRecords {
	return &MigrateRecords{source: source, dest: dest, destInit: destInit, logger: logger}
}

// Execute migrates all records in source order. Records already present in the
// destination are skipped if identical; otherwise it fails with ErrMigrationConflict.
func (uc *MigrateRecords) Execute(ctx context.Context, in MigrateRecordsInput) (*MigrateRecordsOutput, error) {
	if uc.source == nil || uc.dest == nil {
		return nil, errors.New("source or destination store is nil")
	}
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}

	if uc.destInit != nil {
		if err := uc.destInit.Initialize(); err != nil {
			return nil, fmt.Errorf("initialize destination store: %w", err)
		}
	}

	rows, err := uc.source.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source records: %w", err)
	}

	existing, err := uc.existingRecords(ctx)
	if err != nil {
		return nil, err
	}

	out := &MigrateRecordsOutput{Total: len(rows)}
	for i, raw := range rows {
		rec, err := domain.RecordFromRaw(raw, loc)
		if err != nil {
			if in.Strict {
				return nil, fmt.Errorf("source row %d: %w", i+1, err)
			}
			uc.logger.Warn("", "migrate", fmt.Sprintf("leaving row %d behind: %v", i+1, err))
			out.Invalid++
			continue
		}

		if prev, ok := existing[rec.ID]; ok {
			if reflect.DeepEqual(prev, rec.Row()) {
				out.Skipped++
				continue
			}
			return nil, fmt.Errorf("%w: %s", domain.ErrMigrationConflict, rec.ID)
		}

		if err := uc.dest.Append(ctx, rec); err != nil {
			return nil, fmt.Errorf("append record %s: %w", rec.ID, err)
		}
		existing[rec.ID] = rec.Row()
		out.Migrated++
	}

	uc.logger.Info("", "migrate", fmt.Sprintf("migrated %d of %d records (%d skipped, %d invalid)", out.Migrated, out.Total, out.Skipped, out.Invalid))
	return out, nil
}

// existingRecords indexes the destination rows by id. Destinations that cannot
// list their rows are treated as empty.
func (uc *MigrateRecords) existingRecords(ctx context.Context) (map[string][]string, error) {
	index := make(map[string][]string)
	exporter, ok := uc.dest.(domain.RecordExporter)
	if !ok {
		return index, nil
	}
	rows, err := exporter.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list destination records: %w", err)
	}
	for _, raw := range rows {
		row := make([]string, len(domain.Columns))
		for i, col := range domain.Columns {
			row[i] = raw.String(col)
		}
		index[raw.String(domain.ColumnID)] = row
	}
	return index, nil
}
