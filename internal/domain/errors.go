package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrInvalidHours       = errors.New("hours must be a number")
	ErrNonPositiveHours   = errors.New("hours must be greater than zero")
	ErrEmptyProjectName   = errors.New("project name cannot be empty")
	ErrMissingProject     = errors.New("no project selected")
	ErrMissingComment     = errors.New("comment cannot be empty")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidChoice      = errors.New("invalid choice")
	ErrNoChartData        = errors.New("no data for chart")
	ErrNoReportLink       = errors.New("report spreadsheet is not configured")
	ErrNotInitialized     = errors.New("record store not initialized")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnknownStore       = errors.New("unknown store backend")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrUnknownChartFormat = errors.New("unknown chart format")
	ErrExportNotSupported = errors.New("store cannot list all records")
	ErrConfigNil          = errors.New("config is nil")
	ErrNoLogFile          = errors.New("no log file")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrMigrationConflict  = errors.New("record differs in destination store")
	ErrRegistryInMemory   = errors.New("project registry is in-memory")
)

// PersistenceError reports that a record could not be written to the store.
type PersistenceError struct {
	Err      error
	RecordID string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save record %s: %v", e.RecordID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidationError returns true for errors caused by bad user input that
// should be reported while keeping the dialog in its current state.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidHours) ||
		errors.Is(err, ErrNonPositiveHours) ||
		errors.Is(err, ErrEmptyProjectName)
}
