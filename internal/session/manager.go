package session

import (
	"errors"
	"sync"

	"github.com/hyperjump/tafuta/internal/search"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no session has the requested id.
var ErrNotFound = errors.New("session not found")

// Manager owns the sessions opened over the API, keyed by id.
type Manager struct {
	engine *search.Engine
	opts   []Option
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager whose sessions search through engine. opts are applied to every
// new session.
func NewManager(engine *search.Engine, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		engine:   engine,
		opts:     append([]Option{WithLogger(logger)}, opts...),
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session.
func (m *Manager) Create() *Session {
	s := New(m.engine, m.opts...)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	m.logger.Debug("session created", zap.String("session", s.ID()))
	return s
}

// Get returns the session with id, or ErrNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete tears down the session with id, or returns ErrNotFound.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.ClearSearch()
	delete(m.sessions, id)
	m.logger.Debug("session deleted", zap.String("session", id))
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
