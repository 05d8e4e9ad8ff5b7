package service

import (
	"crypto/subtle"
	"sync"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

// SessionManager hands out opaque tokens in exchange for the shared access
// code. Tokens live in memory until revoked or the process restarts.
type SessionManager struct {
	mu         sync.Mutex
	accessCode string
	tokens     map[string]struct{}
}

func NewSessionManager(accessCode string) *SessionManager {
	return &SessionManager{
		accessCode: accessCode,
		tokens:     make(map[string]struct{}),
	}
}

// Login issues a token when code matches the access code.
func (m *SessionManager) Login(code string) (string, bool) {
	if code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(m.accessCode)) != 1 {
		return "", false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.tokens[token] = struct{}{}
	return token, true
}

func (m *SessionManager) Valid(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.tokens[token]
	return ok
}

func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, token)
}
