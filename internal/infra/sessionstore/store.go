// Package sessionstore keeps dialog sessions in memory.
package sessionstore

import (
	"sync"

	"github.com/runoshun/hourlog/internal/domain"
)

// entry pairs a session with the lock serializing its turns.
// refs counts turns holding or waiting for mu and is guarded by Store.mu.
type entry struct {
	session *domain.Session
	mu      sync.Mutex
	refs    int
}

// Store implements domain.SessionStore. Turns of one user run one at a time;
// different users never wait on each other beyond the map lookup.
// Sessions that end a turn idle are dropped when no other turn is pending.
type Store struct {
	entries map[string]*entry
	mu      sync.Mutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// WithSession runs fn with the user's session, creating it on first use.
func (s *Store) WithSession(userID string, fn func(*domain.Session) error) error {
	e := s.acquire(userID)
	defer s.release(userID, e)

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns a copy of the user's session, or nil if there is none.
func (s *Store) Snapshot(userID string) *domain.Session {
	s.mu.Lock()
	e, ok := s.entries[userID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := *e.session
	return &cp
}

func (s *Store) acquire(userID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{session: domain.NewSession(userID)}
		s.entries[userID] = e
	}
	e.refs++
	return e
}

// release drops the entry when this was the last pending turn and the session is idle.
// With refs at zero no other goroutine can reach e, so its session is read without e.mu.
func (s *Store) release(userID string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.refs--
	if e.refs == 0 && e.session.IsIdle() {
		delete(s.entries, userID)
	}
}

// Ensure Store implements domain.SessionStore.
var _ domain.SessionStore = (*Store)(nil)
