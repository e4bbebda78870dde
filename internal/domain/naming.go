package domain

import (
	"path/filepath"
	"regexp"
)

// unsafeFileChars matches characters not allowed in per-user log file names.
var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// UserLogPath returns the path to a user's log file.
// Format: <data dir>/logs/user-<id>.log
func UserLogPath(dataDir, userID string) string {
	return filepath.Join(dataDir, "logs", "user-"+unsafeFileChars.ReplaceAllString(userID, "_")+".log")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "hourlog.log")
}

// RecordsStorePath returns the default record store path for a backend.
func RecordsStorePath(dataDir, backend string) string {
	if backend == StoreBackendSQLite {
		return filepath.Join(dataDir, "records.db")
	}
	return filepath.Join(dataDir, "records.json")
}

// ProjectsStorePath returns the path of the persistent project registry.
func ProjectsStorePath(dataDir string) string {
	return filepath.Join(dataDir, "projects.json")
}

// LocalConfigPath returns the data directory config path.
func LocalConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}
