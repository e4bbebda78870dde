package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/hourlog/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "records.json"))
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return store
}

func testRecord(userID, username, project string, hours float64, at time.Time) domain.TimeRecord {
	return domain.TimeRecord{
		ID:          domain.RecordID(userID, at),
		Timestamp:   at,
		UserID:      userID,
		Username:    username,
		ProjectName: project,
		Hours:       hours,
		Comment:     domain.NoCommentText,
	}
}

func TestStore_Initialize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "records.json")

	store := New(path)
	if store.IsInitialized() {
		t.Fatal("IsInitialized() = true before Initialize")
	}

	// Initialize should create the file
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	// File should exist
	if _, err := os.Stat(path); err != nil {
		t.Errorf("store file not created: %v", err)
	}

	if err := store.Append(context.Background(), testRecord("1", "a", "P", 1, time.Now())); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// Initialize again should be idempotent and keep data
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize() second call error = %v", err)
	}
	rows, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("All() returned %d rows, want 1", len(rows))
	}
}

func TestStore_NotInitialized(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "records.json"))

	err := store.Append(context.Background(), testRecord("1", "a", "P", 1, time.Now()))
	if !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Append() error = %v, want %v", err, domain.ErrNotInitialized)
	}
}

func TestStore_AppendAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	records := []domain.TimeRecord{
		testRecord("42", "alice", "Website", 2, at),
		testRecord("7", "bob", "Website", 3, at.Add(time.Minute)),
		testRecord("42", "alice", "Mobile app", 1.25, at.Add(2*time.Minute)),
		testRecord("9", "id_9", "Website", 4, at.Add(3*time.Minute)),
	}
	for _, r := range records {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	rows, err := store.Query(ctx, domain.Identifier{Username: "alice"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Query() returned %d rows, want 2", len(rows))
	}
	// Log order is preserved and values keep the row format
	if got := rows[1].String(domain.ColumnProject); got != "Mobile app" {
		t.Errorf("rows[1] project = %q, want %q", got, "Mobile app")
	}
	if got := rows[1].String(domain.ColumnHours); got != "1.25" {
		t.Errorf("rows[1] hours = %q, want %q", got, "1.25")
	}
	if got := rows[0].String(domain.ColumnTimestamp); got != "2024-05-10 09:00:00" {
		t.Errorf("rows[0] date/time = %q", got)
	}

	rows, err = store.Query(ctx, domain.Identifier{UserID: "9"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Query(user id) returned %d rows, want 1", len(rows))
	}

	rows, err = store.Query(ctx, domain.Identifier{Username: "nobody"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Query(unknown) returned %d rows, want 0", len(rows))
	}
}

func TestStore_ConcurrentAppend(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Append(ctx, testRecord("42", "alice", "P", 1, at.Add(time.Duration(i)*time.Millisecond))); err != nil {
				t.Errorf("Append() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	rows, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(rows) != 20 {
		t.Errorf("All() returned %d rows, want 20", len(rows))
	}
}

func TestStore_CancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Append(ctx, testRecord("1", "a", "P", 1, time.Now())); !errors.Is(err, context.Canceled) {
		t.Errorf("Append() error = %v, want context.Canceled", err)
	}
	if _, err := store.Query(ctx, domain.Identifier{UserID: "1"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Query() error = %v, want context.Canceled", err)
	}
}

func TestStore_MalformedRowsSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	content := `{"records":[{"username":"alice","hours":2.5,"date/time":"2024-05-10 09:00:00"},{"username":"alice","hours":"n/a"}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rows, err := New(path).Query(context.Background(), domain.Identifier{Username: "alice"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Query() returned %d rows, want 2", len(rows))
	}
	if hours, ok := domain.ParseRecordHours(rows[0][domain.ColumnHours]); !ok || hours != 2.5 {
		t.Errorf("hours = %v, %v", hours, ok)
	}
}
