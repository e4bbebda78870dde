// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/hourlog/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockRecordStore is a test double for domain.RecordStore and domain.RecordExporter.
// Fields are ordered to minimize memory padding.
type MockRecordStore struct {
	AppendErr error
	QueryErr  error
	Appended  []domain.TimeRecord
	Rows      []domain.RawRecord // Returned by Query/All in addition to appended records
	mu        sync.Mutex
}

// NewMockRecordStore creates a new MockRecordStore.
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{}
}

var (
	_ domain.RecordStore    = (*MockRecordStore)(nil)
	_ domain.RecordExporter = (*MockRecordStore)(nil)
)

// Append records the call or returns AppendErr.
func (m *MockRecordStore) Append(_ context.Context, record domain.TimeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Appended = append(m.Appended, record)
	return nil
}

// Query returns matching rows or QueryErr.
func (m *MockRecordStore) Query(_ context.Context, id domain.Identifier) ([]domain.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	var out []domain.RawRecord
	for _, r := range m.all() {
		if id.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// All returns every row or QueryErr.
func (m *MockRecordStore) All(_ context.Context) ([]domain.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return m.all(), nil
}

func (m *MockRecordStore) all() []domain.RawRecord {
	out := append([]domain.RawRecord(nil), m.Rows...)
	for _, r := range m.Appended {
		out = append(out, r.Raw())
	}
	return out
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr    error
	InitCalled bool
}

var _ domain.StoreInitializer = (*MockStoreInitializer)(nil)

// Initialize records the call and returns InitErr.
func (m *MockStoreInitializer) Initialize() error {
	m.InitCalled = true
	return m.InitErr
}

// MockProjectRegistry is a test double for domain.ProjectRegistry.
// Fields are ordered to minimize memory padding.
type MockProjectRegistry struct {
	ListErr  error
	AddErr   error
	GetErr   error
	Projects []domain.Project
	NextIDN  int
}

// NewMockProjectRegistry creates a registry holding the given names with ids 1..n.
func NewMockProjectRegistry(names ...string) *MockProjectRegistry {
	m := &MockProjectRegistry{NextIDN: 1}
	for _, name := range names {
		m.Projects = append(m.Projects, domain.Project{ID: m.NextIDN, Name: name})
		m.NextIDN++
	}
	return m
}

var _ domain.ProjectRegistry = (*MockProjectRegistry)(nil)

// List returns the projects or ListErr.
func (m *MockProjectRegistry) List() ([]domain.Project, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]domain.Project(nil), m.Projects...), nil
}

// Add appends a project or returns AddErr.
func (m *MockProjectRegistry) Add(name string) (domain.Project, error) {
	if m.AddErr != nil {
		return domain.Project{}, m.AddErr
	}
	p := domain.Project{ID: m.NextIDN, Name: name}
	m.NextIDN++
	m.Projects = append(m.Projects, p)
	return p, nil
}

// Get returns the project with id, nil if missing.
func (m *MockProjectRegistry) Get(id int) (*domain.Project, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Projects {
		if m.Projects[i].ID == id {
			p := m.Projects[i]
			return &p, nil
		}
	}
	return nil, nil
}

// MockSessionStore is a single-goroutine test double for domain.SessionStore.
// It never drops sessions so tests can inspect them after a turn.
type MockSessionStore struct {
	Sessions map[string]*domain.Session
}

// NewMockSessionStore creates a new MockSessionStore.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{Sessions: make(map[string]*domain.Session)}
}

var _ domain.SessionStore = (*MockSessionStore)(nil)

// WithSession runs fn with the user's session.
func (m *MockSessionStore) WithSession(userID string, fn func(*domain.Session) error) error {
	s, ok := m.Sessions[userID]
	if !ok {
		s = domain.NewSession(userID)
		m.Sessions[userID] = s
	}
	return fn(s)
}

// MockPresenter is a test double for domain.Presenter that collects replies.
type MockPresenter struct {
	Err     error
	Replies []domain.Reply
}

var _ domain.Presenter = (*MockPresenter)(nil)

// Present records the reply and returns Err.
func (m *MockPresenter) Present(_ context.Context, _ string, reply domain.Reply) error {
	m.Replies = append(m.Replies, reply)
	return m.Err
}

// Last returns the most recent reply.
func (m *MockPresenter) Last() domain.Reply {
	if len(m.Replies) == 0 {
		return domain.Reply{}
	}
	return m.Replies[len(m.Replies)-1]
}

// Texts returns the text of every reply.
func (m *MockPresenter) Texts() []string {
	out := make([]string, len(m.Replies))
	for i, r := range m.Replies {
		out[i] = r.Text
	}
	return out
}

// Reset forgets collected replies.
func (m *MockPresenter) Reset() {
	m.Replies = nil
}

// MockChartRenderer is a test double for domain.ChartRenderer.
// Fields are ordered to minimize memory padding.
type MockChartRenderer struct {
	Err        error
	LastSeries domain.Series
	LastTitle  string
	Calls      int
}

var _ domain.ChartRenderer = (*MockChartRenderer)(nil)

// Render records the call and returns a text chart.
func (m *MockChartRenderer) Render(series domain.Series, title string) (*domain.ChartImage, error) {
	m.Calls++
	m.LastSeries = series
	m.LastTitle = title
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.ChartImage{
		Title:       title,
		Format:      domain.ChartFormatText,
		Data:        []byte(fmt.Sprintf("%d slices", len(series))),
		Placeholder: len(series) == 0,
	}, nil
}

// LogEntry is one line captured by MockLogger.
type LogEntry struct {
	Level    string
	UserID   string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that captures entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level, userID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, UserID: userID, Category: category, Msg: msg})
}

// Info captures an info entry.
func (m *MockLogger) Info(userID, category, msg string) { m.add("INFO", userID, category, msg) }

// Debug captures a debug entry.
func (m *MockLogger) Debug(userID, category, msg string) { m.add("DEBUG", userID, category, msg) }

// Warn captures a warning entry.
func (m *MockLogger) Warn(userID, category, msg string) { m.add("WARN", userID, category, msg) }

// Error captures an error entry.
func (m *MockLogger) Error(userID, category, msg string) { m.add("ERROR", userID, category, msg) }

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitLocalErr     error
	InitGlobalErr    error
	InitConfig       *domain.Config
	LocalConfigInfo  domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitLocalCalled  bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		LocalConfigInfo: domain.ConfigInfo{
			Path:   "/test/data/config.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/hourlog/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetLocalConfigInfo returns the configured local config info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitLocalConfig records the call and returns configured error.
func (m *MockConfigManager) InitLocalConfig(cfg *domain.Config) error {
	m.InitLocalCalled = true
	m.InitConfig = cfg
	return m.InitLocalErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	return m.InitGlobalErr
}
