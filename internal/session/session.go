// Package session tracks per-user analysis state for the HTTP API. Each
// session owns at most one dataset with its processor and the artifact
// paths produced from it.
package session

import (
	"log"
	"sync"
	"time"

	"datasuite/domain/core"
	"datasuite/internal/processor"
)

// Session is one user's workspace: the uploaded dataset, the processor
// built over it, and the report files rendered so far.
type Session struct {
	ID         core.SessionID
	CreatedAt  time.Time
	SourceFile string
	Processor  *processor.Processor
	ExcelPath  string
	PDFPath    string
}

// HasDataset reports whether a dataset has been loaded.
func (s *Session) HasDataset() bool {
	return s.Processor != nil
}

// Reset discards the dataset and artifacts, keeping the session alive so
// the user can start over with a new upload.
func (s *Session) Reset() {
	s.SourceFile = ""
	s.Processor = nil
	s.ExcelPath = ""
	s.PDFPath = ""
}

// Manager owns all live sessions. Safe for concurrent use by HTTP
// handlers.
type Manager struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[core.SessionID]*Session),
	}
}

// Create starts a new session with a fresh ID.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:        core.NewSessionID(),
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("[SessionManager] created session %s", s.ID)
	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id core.SessionID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session entirely.
func (m *Manager) Delete(id core.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return core.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
