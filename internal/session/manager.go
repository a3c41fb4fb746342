package session

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/archinews-creator/internal/framing"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = fmt.Errorf("session not found")

// Manager holds the live sessions of the HTTP server.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
	cache    *framing.Cache
	logger   *slog.Logger
}

// NewManager creates a manager whose sessions share the frame cache.
func NewManager(cache *framing.Cache, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		sessions: make(map[string]*State),
		cache:    cache,
		logger:   logger,
	}
}

// Create starts a new session.
func (m *Manager) Create() *State {
	s := New(m.cache)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created", "session_id", s.ID)
	return s
}

// With runs fn with exclusive access to the session.
func (m *Manager) With(id string, fn func(s *State) error) error {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return fn(s)
}

// Delete ends a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Expire ends sessions idle for longer than idle and returns how many were removed.
// A session that is locked is in use and is skipped; Expire never waits on one.
func (m *Manager) Expire(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	m.mu.RLock()
	snapshot := make(map[string]*State, len(m.sessions))
	for id, s := range m.sessions {
		snapshot[id] = s
	}
	m.mu.RUnlock()

	var stale []string
	for id, s := range snapshot {
		if !s.mu.TryLock() {
			continue
		}
		if s.LastActivity.Before(cutoff) {
			stale = append(stale, id)
		}
		s.mu.Unlock()
	}
	if len(stale) == 0 {
		return 0
	}

	removed := 0
	m.mu.Lock()
	for _, id := range stale {
		if m.sessions[id] == snapshot[id] {
			delete(m.sessions, id)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.logger.Info("expired idle sessions", "count", removed)
	}
	return removed
}
