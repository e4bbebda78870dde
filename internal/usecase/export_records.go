package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/hourlog/internal/domain"
)

// ExportRecordsInput contains the parameters for exporting records.
type ExportRecordsInput struct {
	UserID   string // Restrict to this user ("" with empty Username = every record)
	Username string
}

// ExportRecordsOutput contains the exported rows in log order.
type ExportRecordsOutput struct {
	Records []domain.RawRecord
}

// ExportRecords is the use case for dumping the record log.
type ExportRecords struct {
	records domain.RecordStore
}

// NewExportRecords creates a new ExportRecords use case.
func NewExportRecords(records domain.RecordStore) *ExportRecords {
	return &ExportRecords{records: records}
}

// Execute returns the user's rows, or every row when no user is given.
func (uc *ExportRecords) Execute(ctx context.Context, in ExportRecordsInput) (*ExportRecordsOutput, error) {
	if in.UserID == "" && in.Username == "" {
		exporter, ok := uc.records.(domain.RecordExporter)
		if !ok {
			return nil, fmt.Errorf("export all records: %w", domain.ErrExportNotSupported)
		}
		rows, err := exporter.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("export all records: %w", err)
		}
		return &ExportRecordsOutput{Records: rows}, nil
	}

	rows, err := uc.records.Query(ctx, domain.IdentifierFor(in.UserID, in.Username))
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	return &ExportRecordsOutput{Records: rows}, nil
}
