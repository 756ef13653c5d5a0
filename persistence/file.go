package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/aicore/core"
)

// FileStore persists snapshots as a single JSON file. Writes go through a
// temp file followed by an os.Rename so a crash mid-write leaves the previous
// snapshot intact.
type FileStore struct {
	path string
}

var _ core.SnapshotStore = (*FileStore)(nil)

// NewFileStore creates a file-backed snapshot store at the given path. Parent
// directories are created on demand.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements core.SnapshotStore.
func (s *FileStore) Save(_ context.Context, snap core.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load implements core.SnapshotStore. A missing file maps to ErrNotFound so
// first startups are not error cases.
func (s *FileStore) Load(_ context.Context) (core.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Snapshot{}, core.ErrNotFound
		}
		return core.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}
