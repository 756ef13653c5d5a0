package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hupe1980/aicore/core"
	"github.com/hupe1980/aicore/logging"
)

// DefaultInterval is the period between automatic snapshots.
const DefaultInterval = 60 * time.Second

// CaptureFunc produces a point-in-time snapshot of the live stores. It is
// called from the manager's own goroutine and must take only shared access;
// the snapshot write that follows happens with no lock held.
type CaptureFunc func() core.Snapshot

// Options configures the snapshot manager.
type Options struct {
	// Interval between automatic snapshots. Defaults to DefaultInterval.
	Interval time.Duration

	// Logger for snapshot outcomes. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Manager runs the snapshot loop. Snapshot failures are logged and retried
// on the next tick; they never surface to request handling.
type Manager struct {
	store    core.SnapshotStore
	capture  CaptureFunc
	interval time.Duration
	logger   logging.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewManager creates a snapshot manager over the given backend.
func NewManager(store core.SnapshotStore, capture CaptureFunc, optFns ...func(o *Options)) *Manager {
	opts := Options{Interval: DefaultInterval}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Manager{
		store:    store,
		capture:  capture,
		interval: opts.Interval,
		logger:   logging.OrNoOp(opts.Logger),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Load fetches the latest snapshot from the backend. A missing snapshot
// returns ok=false without error; a corrupt or unreadable one is logged as a
// warning and also returns ok=false, so startup proceeds with empty stores.
func (m *Manager) Load(ctx context.Context) (core.Snapshot, bool) {
	snap, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			m.logger.Warn("snapshot load failed, starting empty", "error", err.Error())
		}
		return core.Snapshot{}, false
	}
	return snap, true
}

// Start launches the periodic snapshot loop. Calling Start more than once is
// a no-op.
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		go m.run()
	})
}

func (m *Manager) run() {
	defer close(m.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Snapshot(context.Background())
		case <-m.stop:
			return
		}
	}
}

// Snapshot captures and saves one snapshot immediately. The error is also
// logged so callers on the periodic path can ignore it.
func (m *Manager) Snapshot(ctx context.Context) error {
	snap := m.capture()
	snap.TakenAt = time.Now().UTC()

	start := time.Now()
	err := m.store.Save(ctx, snap)
	logging.LogSnapshot(m.logger, len(snap.Experiences), time.Since(start), err)
	return err
}

// Stop halts the loop and writes a final snapshot. Safe to call multiple
// times; only the first call does work.
func (m *Manager) Stop(ctx context.Context) error {
	var err error
	m.stopOnce.Do(func() {
		m.startOnce.Do(func() { close(m.done) }) // never started; unblock the wait below
		close(m.stop)
		<-m.done
		err = m.Snapshot(ctx)
	})
	return err
}
