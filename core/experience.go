package core

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Experience is an immutable recorded unit of content. Once inserted it is
// never modified; it disappears only through a full store clear.
type Experience struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata,omitempty"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewExperienceID mints a generation-ordered experience id. Monotonic ULIDs
// keep lexicographic order aligned with insertion order, so sorting ids
// reproduces store order.
func NewExperienceID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return "exp_" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewExperience assembles an Experience with a fresh id and the current UTC
// timestamp. Content validation is the store's responsibility.
func NewExperience(content, source, metadata string) Experience {
	return Experience{
		ID:        NewExperienceID(),
		Content:   content,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
}

// ExperienceStore is the append-mostly collection of experiences. All read
// methods observe a consistent snapshot; Insert effects are visible to every
// read that starts after Insert returns.
type ExperienceStore interface {
	// Insert validates, assigns an id and timestamp and appends. Returns a
	// ValidationError when content is empty.
	Insert(content, source, metadata string) (Experience, error)

	// Get returns the experience with the given id or ErrNotFound.
	Get(id string) (Experience, error)

	// List returns a copy of all experiences in insertion order.
	List() []Experience

	// Search returns experiences whose content contains keyword
	// case-insensitively. An empty slice is a valid, non-error result.
	Search(keyword string) []Experience

	// Len reports the number of stored experiences.
	Len() int

	// Clear removes every experience atomically and reports how many were
	// removed.
	Clear() int

	// Restore replaces the store contents wholesale. Used by snapshot
	// loading at startup.
	Restore(exps []Experience)
}
