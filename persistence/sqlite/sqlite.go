// Package sqlite provides a SQLite-backed snapshot store. It keeps the
// experiences in a real table instead of a JSON blob, which makes the
// snapshot inspectable with ordinary tooling.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/aicore/core"
)

// Store implements core.SnapshotStore on SQLite. Each Save replaces the
// previous snapshot inside one transaction, so readers never observe a
// half-written state.
type Store struct {
	db *sql.DB
}

var _ core.SnapshotStore = (*Store)(nil)

// NewStore opens or creates a SQLite database at the given path.
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS experiences (
		position   INTEGER PRIMARY KEY,
		id         TEXT NOT NULL,
		content    TEXT NOT NULL,
		source     TEXT NOT NULL,
		timestamp  TEXT NOT NULL,
		metadata   TEXT
	);

	CREATE TABLE IF NOT EXISTS snapshot_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save implements core.SnapshotStore.
func (s *Store) Save(ctx context.Context, snap core.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM experiences`); err != nil {
		return fmt.Errorf("clear experiences: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO experiences (position, id, content, source, timestamp, metadata) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, exp := range snap.Experiences {
		if _, err := stmt.ExecContext(ctx, pos, exp.ID, exp.Content, exp.Source, exp.Timestamp.UTC().Format(time.RFC3339Nano), exp.Metadata); err != nil {
			return fmt.Errorf("insert experience %s: %w", exp.ID, err)
		}
	}

	if err := s.setMeta(ctx, tx, "taken_at", snap.TakenAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	if snap.Personality != nil {
		data, err := json.Marshal(snap.Personality)
		if err != nil {
			return fmt.Errorf("encode personality: %w", err)
		}
		if err := s.setMeta(ctx, tx, "personality", string(data)); err != nil {
			return err
		}
	} else if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_meta WHERE key = 'personality'`); err != nil {
		return fmt.Errorf("clear personality: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (s *Store) setMeta(ctx context.Context, tx *sql.Tx, key, value string) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return fmt.Errorf("set meta %s: %w", key, err)
	}
	return nil
}

// Load implements core.SnapshotStore. A database that never received a
// snapshot returns ErrNotFound.
func (s *Store) Load(ctx context.Context) (core.Snapshot, error) {
	var takenAt string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = 'taken_at'`).Scan(&takenAt)
	if err == sql.ErrNoRows {
		return core.Snapshot{}, core.ErrNotFound
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read snapshot meta: %w", err)
	}

	snap := core.Snapshot{}
	if snap.TakenAt, err = time.Parse(time.RFC3339Nano, takenAt); err != nil {
		return core.Snapshot{}, fmt.Errorf("parse taken_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, content, source, timestamp, metadata FROM experiences ORDER BY position`)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read experiences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var exp core.Experience
		var ts string
		var meta sql.NullString
		if err := rows.Scan(&exp.ID, &exp.Content, &exp.Source, &ts, &meta); err != nil {
			return core.Snapshot{}, fmt.Errorf("scan experience: %w", err)
		}
		if exp.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return core.Snapshot{}, fmt.Errorf("parse timestamp: %w", err)
		}
		exp.Metadata = meta.String
		snap.Experiences = append(snap.Experiences, exp)
	}
	if err := rows.Err(); err != nil {
		return core.Snapshot{}, fmt.Errorf("iterate experiences: %w", err)
	}

	var personality string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM snapshot_meta WHERE key = 'personality'`).Scan(&personality)
	if err == nil {
		var state core.PersonalityState
		if err := json.Unmarshal([]byte(personality), &state); err != nil {
			return core.Snapshot{}, fmt.Errorf("decode personality: %w", err)
		}
		snap.Personality = &state
	} else if err != sql.ErrNoRows {
		return core.Snapshot{}, fmt.Errorf("read personality: %w", err)
	}

	return snap, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
