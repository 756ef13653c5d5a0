// Package pattern derives keyword statistics from experience contents. The
// index is strictly a cache: it can be discarded and rebuilt from the
// experience store at any time and is never persisted as source of truth.
package pattern

import (
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/aicore/core"
)

type entry struct {
	frequency int
	ids       map[string]struct{}
}

// Index is the in-memory PatternIndex. Incremental Observe calls and a full
// RebuildAll over the same experiences produce identical state because both
// paths fold experiences through the same tokenizer, one at a time.
//
// Concurrency: protected by RWMutex; accessors return freshly built entries.
type Index struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewIndex constructs an empty pattern index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]*entry)}
}

// Observe folds a single experience into the index.
func (ix *Index) Observe(exp core.Experience) {
	tokens := Tokenize(exp.Content)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.observeLocked(exp.ID, tokens)
}

func (ix *Index) observeLocked(id string, tokens []string) {
	for _, tok := range tokens {
		e, ok := ix.entries[tok]
		if !ok {
			e = &entry{ids: make(map[string]struct{})}
			ix.entries[tok] = e
		}
		e.frequency++
		e.ids[id] = struct{}{}
	}
}

// RebuildAll recomputes the whole index from the given experiences.
func (ix *Index) RebuildAll(exps []core.Experience) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = make(map[string]*entry, len(ix.entries))
	for _, exp := range exps {
		ix.observeLocked(exp.ID, Tokenize(exp.Content))
	}
}

// Top returns up to n entries sorted by descending frequency, ties broken
// alphabetically by keyword. A negative n returns every entry.
func (ix *Index) Top(n int) []core.PatternEntry {
	ix.mu.RLock()
	all := make([]core.PatternEntry, 0, len(ix.entries))
	for kw, e := range ix.entries {
		all = append(all, ix.buildEntry(kw, e))
	}
	ix.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Frequency != all[j].Frequency {
			return all[i].Frequency > all[j].Frequency
		}
		return all[i].Keyword < all[j].Keyword
	})
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all
}

// Detail returns the entry for keyword (case-insensitive) or ErrNotFound.
func (ix *Index) Detail(keyword string) (core.PatternEntry, error) {
	kw := strings.ToLower(keyword)

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.entries[kw]
	if !ok {
		return core.PatternEntry{}, core.ErrNotFound
	}
	return ix.buildEntry(kw, e), nil
}

// buildEntry materializes an immutable PatternEntry. Ids are sorted, which
// for ULID-based ids reproduces insertion order. Caller must hold the lock.
func (ix *Index) buildEntry(kw string, e *entry) core.PatternEntry {
	ids := make([]string, 0, len(e.ids))
	for id := range e.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return core.PatternEntry{
		Keyword:         kw,
		Frequency:       e.frequency,
		ExperienceCount: len(ids),
		ExperienceIDs:   ids,
	}
}

// Len reports the number of distinct keywords.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Clear discards all entries.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = make(map[string]*entry)
}
