package auth

import (
	"sync"

	"github.com/google/uuid"
)

// SessionManager tracks active login sessions as opaque token -> user id pairs.
// Sessions live in memory only; a restart logs everyone out.
type SessionManager struct {
	sessions map[string]string
	mu       sync.RWMutex
}

// NewSessionManager creates an empty session registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]string)}
}

// Open issues a fresh token bound to the given user id.
func (sm *SessionManager) Open(userID string) string {
	token := uuid.NewString()
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[token] = userID
	return token
}

// Resolve returns the user id bound to a token.
func (sm *SessionManager) Resolve(token string) (string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	userID, ok := sm.sessions[token]
	return userID, ok
}

// Close invalidates a token. Closing an unknown token is a no-op.
func (sm *SessionManager) Close(token string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, token)
}

// CloseAll drops every active session, used after a factory reset.
func (sm *SessionManager) CloseAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions = make(map[string]string)
}
