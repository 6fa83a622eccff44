// Package session tracks the players connected to the SSH server.
package session

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrFull is returned by Register when the registry is at capacity.
var ErrFull = errors.New("session: too many active sessions")

// Session describes one connected player.
type Session struct {
	ID         uuid.UUID
	User       string
	RemoteAddr string
	StartedAt  time.Time
}

// New creates a session with a fresh random ID.
func New(user, remoteAddr string) Session {
	return Session{
		ID:         uuid.New(),
		User:       user,
		RemoteAddr: remoteAddr,
		StartedAt:  time.Now(),
	}
}

// ShortID returns the first block of the ID, enough to tell sessions apart in logs.
func (s Session) ShortID() string {
	return s.ID.String()[:8]
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	max      int // 0 means unlimited
	sessions map[uuid.UUID]Session
}

// NewRegistry creates a registry holding at most max sessions.
// A max of zero or less means no limit.
func NewRegistry(max int) *Registry {
	return &Registry{
		max:      max,
		sessions: make(map[uuid.UUID]Session),
	}
}

// Register adds a session to the registry.
func (r *Registry) Register(s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.sessions) >= r.max {
		return ErrFull
	}
	r.sessions[s.ID] = s
	return nil
}

// Unregister removes a session from the registry.
func (r *Registry) Unregister(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns the active sessions, oldest first.
func (r *Registry) List() []Session {
	r.mu.RLock()
	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Session) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return out
}
