package session

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrSessionNotFound = errors.New("session: no open session for page")
	ErrSessionExists   = errors.New("session: page already has an open session")
)

// Registry tracks the open sessions of a process by page key.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Register adds s under key. A page may have at most one open session.
func (r *Registry) Register(key string, s *Session) error {
	if s == nil {
		return ErrSessionNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[key]; ok {
		return ErrSessionExists
	}
	r.sessions[key] = s
	return nil
}

// Lookup returns the open session for key.
func (r *Registry) Lookup(key string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[key]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close drops the session for key, discarding its history.
func (r *Registry) Close(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[key]; !ok {
		return false
	}
	delete(r.sessions, key)
	return true
}

// Keys lists the page keys with an open session, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.sessions))
	for key := range r.sessions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
