package cart

import (
	"context"
	"sync"

	"github.com/guardtag/guardtag-backend/pkg/logger"
)

// Manager hands out cart sessions keyed by session id. The first request
// for an id restores the durable snapshot; later requests reuse the live
// session so concurrent mutations serialize on its lock.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	slot     Slot
	logg     *logger.Logger
}

func NewManager(slot Slot, logg *logger.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		slot:     slot,
		logg:     logg,
	}
}

// Session returns the live session for id, creating and restoring it on
// first use.
func (m *Manager) Session(ctx context.Context, id string) *Session {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if !ok {
		session = newSession(id, m.slot, m.logg)
		m.sessions[id] = session
	}
	m.mu.Unlock()

	// restore is a once-only; concurrent callers block until the snapshot
	// is applied so no mutation can race the initial load.
	session.restore(ctx)
	return session
}

// Drop forgets the in-memory session. The durable slot is untouched, so a
// later Session call restores from it.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
