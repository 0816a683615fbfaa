// Package session holds the authenticated identity for the lifetime of a
// login. It replaces process-global current-user state with an explicit
// object constructed at startup and handed to whatever needs the acting
// identity.
package session

import (
	"sync"

	"taskdesk/internal/models"
)

// Session is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	identity models.Identity
}

func New() *Session {
	return &Session{identity: models.Identity{Role: models.RoleUser}}
}

// Set captures the identity after a successful login.
func (s *Session) Set(identity models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
}

// Clear resets to the unauthenticated sentinel: id 0, empty login,
// default role.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = models.Identity{Role: models.RoleUser}
}

// Current returns the identity set by the last login, or the sentinel.
func (s *Session) Current() models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Authenticated reports whether a login has been captured.
func (s *Session) Authenticated() bool {
	return s.Current().ID > 0
}
