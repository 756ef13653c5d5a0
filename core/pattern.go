package core

// PatternEntry carries the derived statistics for a single keyword.
//
// Invariant: Frequency >= ExperienceCount and
// ExperienceCount == len(ExperienceIDs). Frequency counts every occurrence
// of the keyword across all experiences; ExperienceIDs holds each owning
// experience exactly once.
type PatternEntry struct {
	Keyword         string   `json:"keyword"`
	Frequency       int      `json:"frequency"`
	ExperienceCount int      `json:"experience_count"`
	ExperienceIDs   []string `json:"experience_ids"`
}

// PatternIndex is a disposable cache derived from ExperienceStore contents.
// It is never the system of record: RebuildAll reproduces the exact same
// state from the experience sequence at any time, and incremental Observe
// calls must leave the index identical to a full rebuild.
type PatternIndex interface {
	// Observe folds a single experience into the index incrementally.
	Observe(exp Experience)

	// RebuildAll recomputes the whole index from the given experiences.
	// Idempotent: rebuilding twice from the same input yields identical
	// entries.
	RebuildAll(exps []Experience)

	// Top returns up to n entries sorted by descending frequency, ties
	// broken alphabetically by keyword.
	Top(n int) []PatternEntry

	// Detail returns the entry for keyword (case-insensitive) or
	// ErrNotFound.
	Detail(keyword string) (PatternEntry, error)

	// Len reports the number of distinct keywords.
	Len() int

	// Clear discards all entries.
	Clear()
}
