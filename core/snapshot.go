package core

import (
	"context"
	"time"
)

// Snapshot is the durable representation of the experience store (and
// optionally the personality state) used for restart recovery. It is written
// atomically and loaded wholesale; the pattern index is never persisted
// since it is fully derived.
type Snapshot struct {
	TakenAt     time.Time         `json:"taken_at"`
	Experiences []Experience      `json:"experiences"`
	Personality *PersonalityState `json:"personality,omitempty"`
}

// SnapshotStore persists and retrieves snapshots. Implementations must make
// Save atomic: a crash mid-write never leaves a partially visible snapshot.
type SnapshotStore interface {
	// Save writes the snapshot, replacing any previous one.
	Save(ctx context.Context, snap Snapshot) error

	// Load returns the most recent snapshot or ErrNotFound when none was
	// ever written.
	Load(ctx context.Context) (Snapshot, error)
}
