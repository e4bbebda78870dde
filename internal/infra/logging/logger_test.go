package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_Info(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("42", "dialog", "test message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[user-42]")
	assert.Contains(t, string(content), "[dialog]")
	assert.Contains(t, string(content), "test message")

	userContent, err := os.ReadFile(domain.UserLogPath(dataDir, "42"))
	require.NoError(t, err)
	assert.Contains(t, string(userContent), "[user-42]")
	assert.Contains(t, string(userContent), "test message")
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("", "app", "global message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")
	assert.Contains(t, string(content), "global message")

	entries, err := os.ReadDir(filepath.Join(dataDir, "logs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no user log file should be created")
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("1", "dialog", "debug message")
	logger.Info("1", "dialog", "info message")
	logger.Warn("1", "dialog", "warn message")
	logger.Error("1", "dialog", "error message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Should not panic
	logger.Info("1", "dialog", "test message")
	logger.Error("1", "dialog", "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("7", "records", `record appended: "Website"`)

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] \[user-7\] \[records\] record appended: "Website"$`, lines[0])
}

func TestLogger_MultipleUserFiles(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("1", "dialog", "message for user 1")
	logger.Info("2", "dialog", "message for user 2")

	user1, err := os.ReadFile(domain.UserLogPath(dataDir, "1"))
	require.NoError(t, err)
	assert.Contains(t, string(user1), "message for user 1")
	assert.NotContains(t, string(user1), "message for user 2")

	user2, err := os.ReadFile(domain.UserLogPath(dataDir, "2"))
	require.NoError(t, err)
	assert.Contains(t, string(user2), "message for user 2")
}

func TestLogger_UnsafeUserID(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("../evil", "dialog", "message")

	assert.FileExists(t, domain.UserLogPath(dataDir, "../evil"))
	assert.Equal(t, filepath.Join(dataDir, "logs"), filepath.Dir(domain.UserLogPath(dataDir, "../evil")))
}

func TestLogger_Mirror(t *testing.T) {
	var buf bytes.Buffer
	logger := New("", slog.LevelInfo).WithMirror(&buf)

	logger.Warn("", "server", "listening")
	logger.Debug("", "server", "hidden")

	assert.Contains(t, buf.String(), "[WARN] [global] [server] listening")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLogger_Close(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)

	logger.Info("1", "dialog", "test message")

	assert.NoError(t, logger.Close())
	assert.FileExists(t, domain.GlobalLogPath(dataDir))
	assert.FileExists(t, domain.UserLogPath(dataDir, "1"))
}
