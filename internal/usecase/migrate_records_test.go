package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrationRecord(id, project string, hours float64) domain.TimeRecord {
	return domain.TimeRecord{
		ID:          id,
		Timestamp:   time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		UserID:      "42",
		Username:    "alice",
		ProjectName: project,
		Hours:       hours,
		Comment:     domain.NoCommentText,
	}
}

func TestMigrateRecords_Execute_MigratesRecords(t *testing.T) {
	source := testutil.NewMockRecordStore()
	source.Appended = []domain.TimeRecord{
		migrationRecord("42_1", "Website", 1.5),
		migrationRecord("42_2", "Mobile app", 2),
	}
	dest := testutil.NewMockRecordStore()
	destInit := &testutil.MockStoreInitializer{}

	uc := NewMigrateRecords(source, dest, destInit, &testutil.MockLogger{})
	out, err := uc.Execute(context.Background(), MigrateRecordsInput{Location: time.UTC})

	require.NoError(t, err)
	assert.True(t, destInit.InitCalled)
	assert.Equal(t, &MigrateRecordsOutput{Total: 2, Migrated: 2}, out)
	require.Len(t, dest.Appended, 2)
	assert.Equal(t, source.Appended[0], dest.Appended[0])
	assert.Equal(t, "Mobile app", dest.Appended[1].ProjectName)
}

func TestMigrateRecords_Execute_SkipsIdentical(t *testing.T) {
	rec := migrationRecord("42_1", "Website", 1.5)
	source := testutil.NewMockRecordStore()
	source.Appended = []domain.TimeRecord{rec}
	dest := testutil.NewMockRecordStore()
	dest.Rows = []domain.RawRecord{rec.Raw()}

	uc := NewMigrateRecords(source, dest, nil, &testutil.MockLogger{})
	out, err := uc.Execute(context.Background(), MigrateRecordsInput{Location: time.UTC})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, 0, out.Migrated)
	assert.Empty(t, dest.Appended)
}

func TestMigrateRecords_Execute_Conflict(t *testing.T) {
	source := testutil.NewMockRecordStore()
	source.Appended = []domain.TimeRecord{migrationRecord("42_1", "Website", 1.5)}
	dest := testutil.NewMockRecordStore()
	dest.Rows = []domain.RawRecord{migrationRecord("42_1", "Website", 3).Raw()}

	uc := NewMigrateRecords(source, dest, nil, &testutil.MockLogger{})
	_, err := uc.Execute(context.Background(), MigrateRecordsInput{Location: time.UTC})

	assert.ErrorIs(t, err, domain.ErrMigrationConflict)
}

func TestMigrateRecords_Execute_MalformedRows(t *testing.T) {
	source := testutil.NewMockRecordStore()
	source.Rows = []domain.RawRecord{
		{domain.ColumnProject: "Website", domain.ColumnHours: "abc"},
	}
	source.Appended = []domain.TimeRecord{migrationRecord("42_1", "Website", 1)}

	t.Run("lenient", func(t *testing.T) {
		dest := testutil.NewMockRecordStore()
		logger := &testutil.MockLogger{}
		uc := NewMigrateRecords(source, dest, nil, logger)
		out, err := uc.Execute(context.Background(), MigrateRecordsInput{Location: time.UTC})

		require.NoError(t, err)
		assert.Equal(t, &MigrateRecordsOutput{Total: 2, Migrated: 1, Invalid: 1}, out)
		assert.Equal(t, 1, logger.Count("WARN"))
	})

	t.Run("strict", func(t *testing.T) {
		dest := testutil.NewMockRecordStore()
		uc := NewMigrateRecords(source, dest, nil, &testutil.MockLogger{})
		_, err := uc.Execute(context.Background(), MigrateRecordsInput{Location: time.UTC, Strict: true})

		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
		assert.Empty(t, dest.Appended)
	})
}

func TestMigrateRecords_Execute_Errors(t *testing.T) {
	t.Run("initialize fails", func(t *testing.T) {
		uc := NewMigrateRecords(testutil.NewMockRecordStore(), testutil.NewMockRecordStore(),
			&testutil.MockStoreInitializer{InitErr: errors.New("locked")}, &testutil.MockLogger{})
		_, err := uc.Execute(context.Background(), MigrateRecordsInput{})
		assert.ErrorContains(t, err, "initialize destination store")
	})

	t.Run("append fails", func(t *testing.T) {
		source := testutil.NewMockRecordStore()
		source.Appended = []domain.TimeRecord{migrationRecord("42_1", "Website", 1)}
		dest := testutil.NewMockRecordStore()
		dest.AppendErr = errors.New("disk full")

		uc := NewMigrateRecords(source, dest, nil, &testutil.MockLogger{})
		_, err := uc.Execute(context.Background(), MigrateRecordsInput{Location: time.UTC})
		assert.ErrorContains(t, err, "disk full")
	})
}
