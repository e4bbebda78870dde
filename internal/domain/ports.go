package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error
}

// RecordStore is the append-only log of time records.
// Implementations may block on I/O; callers pass the turn's context.
type RecordStore interface {
	// Append writes one record at the end of the log.
	Append(ctx context.Context, record TimeRecord) error

	// Query returns the raw rows belonging to the identifier, in log order.
	Query(ctx context.Context, id Identifier) ([]RawRecord, error)
}

// RecordExporter is implemented by stores that can return every row.
type RecordExporter interface {
	// All returns every raw row in log order.
	All(ctx context.Context) ([]RawRecord, error)
}

// ProjectRegistry maps project ids to names.
type ProjectRegistry interface {
	// List returns all projects in insertion order.
	List() ([]Project, error)

	// Add registers a project under the next id. Ids are never reused.
	Add(name string) (Project, error)

	// Get retrieves a project by ID. Returns nil if not found.
	Get(id int) (*Project, error)
}

// SessionStore keeps one dialog session per user.
type SessionStore interface {
	// WithSession runs fn with the user's session, creating it on first use.
	// Calls for the same user are serialized; different users run concurrently.
	// A session left idle by fn may be dropped once no other turn is pending.
	WithSession(userID string, fn func(*Session) error) error
}

// Presenter delivers replies to the user over a chat transport.
type Presenter interface {
	// Present shows reply to the user.
	Present(ctx context.Context, userID string, reply Reply) error
}

// ChartRenderer turns a chart series into an image artifact.
type ChartRenderer interface {
	// Render draws series with the given title. An empty series yields a placeholder.
	Render(series Series, title string) (*ChartImage, error)
}

// Logger writes diagnostic log lines, globally and per user.
type Logger interface {
	// Info logs an info message. An empty userID logs globally only.
	Info(userID, category, msg string)
	// Debug logs a debug message.
	Debug(userID, category, msg string)
	// Warn logs a warning message.
	Warn(userID, category, msg string)
	// Error logs an error message.
	Error(userID, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (local + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetLocalConfigInfo returns information about the data directory config file.
	GetLocalConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitLocalConfig writes the config template to the data directory.
	InitLocalConfig(cfg *Config) error

	// InitGlobalConfig writes the config template to the global config directory.
	InitGlobalConfig(cfg *Config) error
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
