package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/hourlog/internal/domain"
)

// LogTimeInput contains the parameters for logging time.
// Fields are ordered to minimize memory padding.
type LogTimeInput struct {
	UserID    string  // User identifier (required)
	Username  string  // Telegram-style handle; "id_<user id>" is stored when empty
	Comment   string  // Comment (required; use domain.NoCommentText to skip)
	Hours     float64 // Hours worked, > 0 (required)
	ProjectID int     // Project ID (required)
}

// LogTimeOutput contains the result of logging time.
type LogTimeOutput struct {
	Record domain.TimeRecord // The appended record
}

// LogTime is the use case for appending one time record.
type LogTime struct {
	records  domain.RecordStore
	projects domain.ProjectRegistry
	clock    domain.Clock
	logger   domain.Logger
}

// NewLogTime creates a new LogTime use case.
func NewLogTime(records domain.RecordStore, projects domain.ProjectRegistry, clock domain.Clock, logger domain.Logger) *LogTime {
	return &LogTime{
		records:  records,
		projects: projects,
		clock:    clock,
		logger:   logger,
	}
}

// Execute validates the entry, copies the project name and appends the record.
// A store failure is returned as *domain.PersistenceError.
func (uc *LogTime) Execute(ctx context.Context, in LogTimeInput) (*LogTimeOutput, error) {
	project, err := uc.projects.Get(in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	now := uc.clock.Now()
	record := domain.TimeRecord{
		ID:          domain.RecordID(in.UserID, now),
		Timestamp:   now,
		UserID:      in.UserID,
		Username:    domain.DisplayUsername(in.UserID, in.Username),
		ProjectName: project.Name,
		Hours:       in.Hours,
		Comment:     strings.TrimSpace(in.Comment),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := uc.records.Append(ctx, record); err != nil {
		uc.logger.Error(in.UserID, "store", fmt.Sprintf("append record %s failed: %v", record.ID, err))
		return nil, &domain.PersistenceError{RecordID: record.ID, Err: err}
	}
	uc.logger.Info(in.UserID, "store", fmt.Sprintf("record %s written: %s %.2fh", record.ID, record.ProjectName, record.Hours))

	return &LogTimeOutput{Record: record}, nil
}
