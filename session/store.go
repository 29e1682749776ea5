// Package session keeps the navigation state of each client in memory.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giygas/ceassist-api/interfaces"
	"github.com/giygas/ceassist-api/navigation"
)

var (
	// ErrNotFound is returned for an unknown or expired session id
	ErrNotFound = errors.New("session not found")
	// ErrCapacity is returned when the store is full
	ErrCapacity = errors.New("session capacity reached")
)

// Compile-time check to ensure Store implements SessionStore
var _ interfaces.SessionStore = (*Store)(nil)

type entry struct {
	state    navigation.State
	lastSeen time.Time
}

// Store is an in-memory SessionStore. Every transition runs under the
// store lock, so concurrent identical actions on one session serialize.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	maxSessions int
	now         func() time.Time
}

// NewStore creates a store holding at most maxSessions sessions (0 means no limit)
func NewStore(maxSessions int) *Store {
	return &Store{
		sessions:    make(map[string]*entry),
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create starts a session at the initial state
func (s *Store) Create() (string, navigation.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return "", navigation.State{}, ErrCapacity
	}

	id := uuid.NewString()
	state := navigation.NewState()
	s.sessions[id] = &entry{state: state, lastSeen: s.now()}
	return id, state, nil
}

// Get returns the session's state and marks it as seen
func (s *Store) Get(id string) (navigation.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return navigation.State{}, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.state, nil
}

// Apply reduces the session's state with action
func (s *Store) Apply(id string, action navigation.Action) (navigation.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return navigation.State{}, false, ErrNotFound
	}

	next, applied := navigation.Apply(e.state, action)
	e.state = next
	e.lastSeen = s.now()
	return next, applied, nil
}

// Delete ends a session
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Sweep evicts every session last seen before cutoff
func (s *Store) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
