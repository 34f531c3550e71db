// Package conversation holds per-session conversation state and serializes
// transitions so that only the most recent message may commit a change.
package conversation

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticket identifies one incoming message. State is the snapshot the message
// should be interpreted against.
type Ticket struct {
	SessionID string
	Seq       uint64
	State     State
}

type session struct {
	mu       sync.Mutex
	state    State
	seq      uint64
	lastSeen time.Time
	inFlight bool // latest ticket not yet committed
}

// Manager tracks conversation state per session
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	seq      atomic.Uint64 // shared by all sessions so numbers are never reused

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewManager creates a state manager. When ttl is positive a janitor goroutine
// drops sessions idle for longer than ttl; Close stops it.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if ttl > 0 {
		go m.janitor()
	} else {
		close(m.done)
	}
	return m
}

// get retrieves or creates the session entry
func (m *Manager) get(sessionID string) *session {
	m.mu.RLock()
	s, exists := m.sessions[sessionID]
	m.mu.RUnlock()
	if exists {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, exists = m.sessions[sessionID]; !exists {
		s = &session{lastSeen: m.now()}
		m.sessions[sessionID] = s
	}
	return s
}

// Begin registers a new message for the session and returns its ticket. Any
// ticket issued earlier for the same session becomes stale.
func (m *Manager) Begin(sessionID string, hasSession bool) Ticket {
	s := m.get(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq = m.seq.Add(1)
	s.lastSeen = m.now()
	s.inFlight = true
	s.state.HasSession = hasSession

	return Ticket{SessionID: sessionID, Seq: s.seq, State: s.state}
}

// Commit stores next as the session state if t is still the latest ticket.
// It reports false for stale tickets, leaving the state untouched.
func (m *Manager) Commit(t Ticket, next State) bool {
	m.mu.RLock()
	s, exists := m.sessions[t.SessionID]
	m.mu.RUnlock()
	if !exists {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Seq != s.seq {
		return false
	}
	s.state = next
	s.lastSeen = m.now()
	s.inFlight = false
	return true
}

// Snapshot returns the current state without registering a message
func (m *Manager) Snapshot(sessionID string) State {
	m.mu.RLock()
	s, exists := m.sessions[sessionID]
	m.mu.RUnlock()
	if !exists {
		return State{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset clears the session (e.g., on chat restart)
func (m *Manager) Reset(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
}

// Len reports how many sessions are tracked
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the janitor. It is safe to call more than once.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.stop) })
	<-m.done
}

func (m *Manager) janitor() {
	defer close(m.done)

	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expire()
		case <-m.stop:
			return
		}
	}
}

// expire removes sessions idle past the ttl. A session whose latest message
// is still being processed is kept until that message commits.
func (m *Manager) expire() {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.mu.Lock()
		idle := !s.inFlight && s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
		}
	}
}
