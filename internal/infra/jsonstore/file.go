package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/hourlog/internal/domain"
)

// lockedFile is a JSON document guarded by an flock'd sidecar file.
// Readers take a shared lock, writers an exclusive one; writes are atomic.
type lockedFile[T any] struct {
	normalize func(*T)
	path      string
	lockPath  string
}

func newLockedFile[T any](path string, normalize func(*T)) *lockedFile[T] {
	return &lockedFile[T]{
		path:      path,
		lockPath:  path + ".lock",
		normalize: normalize,
	}
}

// exists checks if the store file exists.
func (f *lockedFile[T]) exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// create writes data unless the file already exists.
func (f *lockedFile[T]) create(data *T) error {
	// Ensure parent directory exists
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	lock, err := f.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer f.releaseLock(lock)

	if f.exists() {
		return nil // Already exists
	}
	return f.write(data)
}

// withLock executes fn with a shared (read) lock.
func (f *lockedFile[T]) withLock(fn func(*T) error) error {
	lock, err := f.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer f.releaseLock(lock)

	data, err := f.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (f *lockedFile[T]) withLockWrite(fn func(*T) error) error {
	lock, err := f.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer f.releaseLock(lock)

	data, err := f.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return f.write(data)
}

func (f *lockedFile[T]) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(f.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(f.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (f *lockedFile[T]) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (f *lockedFile[T]) read() (*T, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data T
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if f.normalize != nil {
		f.normalize(&data)
	}

	return &data, nil
}

func (f *lockedFile[T]) write(data *T) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
