// Package logging provides file-based logging for hourlog.
// It outputs logs to both a global log file (<data dir>/logs/hourlog.log)
// and per-user log files (<data dir>/logs/user-<id>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/hourlog/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog levels with file-based output support.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile *os.File
	userFiles  map[string]*os.File
	mirror     io.Writer
	dataDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes to the data directory's logs.
// If dataDir is empty, logging is disabled (returns a no-op logger).
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir:   dataDir,
		level:     level,
		userFiles: make(map[string]*os.File),
	}
}

// WithMirror additionally copies every global line to w (e.g. stderr for the server).
func (l *Logger) WithMirror(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mirror = w
	return l
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureLogsDir creates the logs directory if it doesn't exist.
func (l *Logger) ensureLogsDir() error {
	return os.MkdirAll(filepath.Join(l.dataDir, "logs"), 0o750)
}

// ensureGlobalFile opens or returns the global log file. Caller holds l.mu.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GlobalLogPath(l.dataDir)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// ensureUserFile opens or returns the user's log file. Caller holds l.mu.
func (l *Logger) ensureUserFile(userID string) (*os.File, error) {
	if f, ok := l.userFiles[userID]; ok {
		return f, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.UserLogPath(l.dataDir, userID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open user log file: %w", err)
	}
	l.userFiles[userID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.userFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.userFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [user-42] [category] message
func formatLog(t time.Time, level slog.Level, userID, category, msg string) string {
	scope := "global"
	if userID != "" {
		scope = "user-" + userID
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to the global log and, when userID is set, to the user's log.
func (l *Logger) log(level slog.Level, userID, category, msg string) {
	if l.dataDir == "" && l.mirror == nil {
		return // Logging disabled
	}

	if level < l.level {
		return
	}

	entry := formatLog(time.Now(), level, userID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, entry)
	}
	if l.dataDir == "" {
		return
	}

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if userID != "" {
		if uf, err := l.ensureUserFile(userID); err == nil {
			_, _ = io.WriteString(uf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(userID, category, msg string) {
	l.log(slog.LevelInfo, userID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(userID, category, msg string) {
	l.log(slog.LevelDebug, userID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(userID, category, msg string) {
	l.log(slog.LevelWarn, userID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(userID, category, msg string) {
	l.log(slog.LevelError, userID, category, msg)
}
