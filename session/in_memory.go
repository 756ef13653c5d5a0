package session

import (
	"sync"

	"github.com/hupe1980/aicore/core"
)

// InMemoryStore is a volatile SessionStore keeping chat sessions in a
// process-local map. Safe for concurrent access; returned sessions are
// clones so callers can never mutate internal state. The table lock is held
// only for map access — appends lock the individual session, keeping
// sessions largely independent of one another.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.ChatSession
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.ChatSession)}
}

// Get returns a clone of the session or ErrNotFound.
func (s *InMemoryStore) Get(id string) (*core.ChatSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, core.ErrNotFound
	}
	return sess.Clone(), nil
}

// Append adds a message to the session, creating the session lazily on
// first use.
func (s *InMemoryStore) Append(id string, msg core.ChatMessage) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = core.NewChatSession(id)
		s.sessions[id] = sess
	}
	s.mu.Unlock()

	sess.AddMessage(msg)
	return nil
}

// ListIDs returns the ids of all known sessions.
func (s *InMemoryStore) ListIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Clear removes the session entirely or returns ErrNotFound.
func (s *InMemoryStore) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
