package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sblake94/plugin-gui-designer/internal/models"
)

// MaxSessions limits concurrent sessions to prevent memory exhaustion.
const MaxSessions = 32

// SessionKeepAliveWindow is how long to keep sessions that are actively
// being used.
const SessionKeepAliveWindow = 5 * time.Minute

// Manager tracks open designer sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	defaults models.CanvasConfig
	notifier Notifier
	log      zerolog.Logger
}

// NewManager creates a session manager. The notifier may be nil.
func NewManager(defaults models.CanvasConfig, notifier Notifier, log zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		defaults: defaults,
		notifier: notifier,
		log:      log,
	}
}

// NewSession opens a fresh session on the default canvas. When at capacity,
// the least recently accessed session is evicted first.
func (m *Manager) NewSession() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= MaxSessions {
		m.evictOldestLocked()
	}

	s := newSession(uuid.New().String(), m.defaults, m.notifier, m.log)
	m.sessions[s.id] = s
	m.log.Info().Str("session", shortID(s.id)).Int("open", len(m.sessions)).Msg("session opened")
	return s
}

// Get returns a session by id and refreshes its keep-alive timestamp.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.Touch()
	}
	return s, ok
}

// Delete closes a session. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	m.log.Info().Str("session", shortID(id)).Msg("session closed")
	return true
}

// Defaults returns the canvas configuration new sessions start on.
func (m *Manager) Defaults() models.CanvasConfig {
	return m.defaults
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupOldSessions removes sessions idle longer than maxAge, but keeps
// sessions accessed within SessionKeepAliveWindow.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAliveCutoff := time.Now().Add(-SessionKeepAliveWindow)

	for id, s := range m.sessions {
		last := s.LastAccessed()
		if last.After(keepAliveCutoff) {
			continue
		}
		if last.Before(cutoff) {
			delete(m.sessions, id)
			m.log.Info().Str("session", shortID(id)).
				Dur("idle", time.Since(last).Round(time.Second)).
				Msg("cleaned up idle session")
		}
	}
}

func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range m.sessions {
		last := s.LastAccessed()
		if oldestID == "" || last.Before(oldest) {
			oldestID = id
			oldest = last
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
		m.log.Warn().Str("session", shortID(oldestID)).Msg("evicted oldest session at capacity")
	}
}
