// Package memory keeps the per-session, append-only chat message log.
package memory

import "sync"

type sessionLog struct {
	mu       sync.RWMutex
	messages []Message
}

// Transcript holds message logs for all sessions
type Transcript struct {
	logs  map[string]*sessionLog
	limit int
	mu    sync.RWMutex
}

// NewTranscript creates a transcript keeping at most limit messages per
// session. A limit of 0 keeps everything.
func NewTranscript(limit int) *Transcript {
	if limit < 0 {
		limit = 0
	}
	return &Transcript{
		logs:  make(map[string]*sessionLog),
		limit: limit,
	}
}

// Append adds messages to the end of the session's log
func (t *Transcript) Append(sessionID string, msgs ...Message) {
	t.mu.Lock()
	l, exists := t.logs[sessionID]
	if !exists {
		l = &sessionLog{}
		t.logs[sessionID] = l
	}
	t.mu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msgs...)

	// Keep only the most recent messages
	if t.limit > 0 && len(l.messages) > t.limit {
		l.messages = append([]Message(nil), l.messages[len(l.messages)-t.limit:]...)
	}
}

// History returns a copy of the session's log, oldest first
func (t *Transcript) History(sessionID string) []Message {
	t.mu.RLock()
	l, exists := t.logs[sessionID]
	t.mu.RUnlock()
	if !exists {
		return []Message{}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	history := make([]Message, len(l.messages))
	copy(history, l.messages)
	return history
}

// Clear drops the session's log
func (t *Transcript) Clear(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.logs, sessionID)
}
