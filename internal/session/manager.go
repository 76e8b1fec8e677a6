package session

import (
	"sync"

	"github.com/google/uuid"

	"college-chatbot/internal/common/logger"
	"college-chatbot/internal/common/metrics"
	"college-chatbot/internal/common/observability"
	"college-chatbot/internal/router"
)

// Manager opens and tracks the sessions of a hosting process. All sessions
// share the same read-only router; each transcript stays private to its
// session.
type Manager struct {
	router   *router.Router
	greeting string
	obs      *observability.Observability
	logger   logger.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager builds a Manager over a shared router.
func NewManager(r *router.Router, greeting string, obs *observability.Observability, log logger.Logger) *Manager {
	return &Manager{
		router:   r,
		greeting: greeting,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "session-manager"}),
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open creates a new session seeded with the configured greeting.
func (m *Manager) Open() *Session {
	s := newSession(m.router, m.greeting, m.obs, m.logger)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	metrics.SessionsActive.Inc()
	m.logger.Info("session opened", map[string]interface{}{
		"sessionId": s.ID().String(),
	})
	return s
}

// Get returns an open session by id.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close discards a session and its transcript.
func (m *Manager) Close(id uuid.UUID) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		metrics.SessionsActive.Dec()
		m.logger.Info("session closed", map[string]interface{}{
			"sessionId": id.String(),
		})
	}
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
