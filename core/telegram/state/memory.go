package state

import "sync"

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryManager constructs an in-memory Manager. State is lost on
// restart; an interrupted dialogue silently resets to idle.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]Session),
	}
}

// Get returns the session for a user if it exists, otherwise an empty session.
func (m *memoryManager) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[userID]
}

// Set replaces the session for a user.
func (m *memoryManager) Set(userID int64, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = s
}

// Clear removes the session for a user.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// InProgress reports whether the user has an active dialogue step.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	return ok && s.Step != StepNone
}
