package experience

import (
	"strings"
	"sync"

	"github.com/hupe1980/aicore/core"
)

// InMemoryStore is the process-local ExperienceStore. It keeps experiences
// in an append-only slice (insertion order) with an id index for O(1) Get.
//
// Concurrency: protected by RWMutex; readers receive copies, never views of
// internal slices. Insert effects are visible to any read starting after
// Insert returns.
// Search: linear scan with case-insensitive substring matching, the exact
// semantics callers rely on for "no match" vs "empty store" distinctions.
type InMemoryStore struct {
	mu          sync.RWMutex
	experiences []core.Experience
	byID        map[string]int // id -> slice position
}

// NewInMemoryStore constructs an empty in-memory experience store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]int)}
}

// Insert validates content, assigns a fresh id and timestamp and appends.
func (s *InMemoryStore) Insert(content, source, metadata string) (core.Experience, error) {
	if strings.TrimSpace(content) == "" {
		return core.Experience{}, core.NewValidationError("content", "must not be empty")
	}
	exp := core.NewExperience(content, source, metadata)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[exp.ID] = len(s.experiences)
	s.experiences = append(s.experiences, exp)
	return exp, nil
}

// Get returns the experience with the given id or ErrNotFound.
func (s *InMemoryStore) Get(id string) (core.Experience, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return core.Experience{}, core.ErrNotFound
	}
	return s.experiences[idx], nil
}

// List returns a copy of all experiences in insertion order.
func (s *InMemoryStore) List() []core.Experience {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Experience, len(s.experiences))
	copy(out, s.experiences)
	return out
}

// Search returns experiences whose content contains keyword
// case-insensitively as a substring, in insertion order.
func (s *InMemoryStore) Search(keyword string) []core.Experience {
	needle := strings.ToLower(keyword)

	s.mu.RLock()
	defer s.mu.RUnlock()
	results := []core.Experience{}
	for _, exp := range s.experiences {
		if strings.Contains(strings.ToLower(exp.Content), needle) {
			results = append(results, exp)
		}
	}
	return results
}

// Len reports the number of stored experiences.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.experiences)
}

// Clear removes everything atomically and reports the removed count.
func (s *InMemoryStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.experiences)
	s.experiences = nil
	s.byID = make(map[string]int)
	return removed
}

// Restore replaces the store contents wholesale (snapshot load).
func (s *InMemoryStore) Restore(exps []core.Experience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experiences = make([]core.Experience, len(exps))
	copy(s.experiences, exps)
	s.byID = make(map[string]int, len(exps))
	for i, exp := range s.experiences {
		s.byID[exp.ID] = i
	}
}
