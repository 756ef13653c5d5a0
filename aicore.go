// Package aicore provides a high-level façade over the in-memory knowledge
// engine: experience storage, derived pattern indexing, heuristic decisions,
// a trait-based personality model and context-aware chat with remote
// generation and deterministic fallback. Most applications interact with this
// package by:
//  1. Creating a Core via New() or NewFromConfig()
//  2. Feeding it experiences (CreateExperience) and chat messages (Send)
//  3. Reading back decisions, patterns and personality state
//
// All defaults are safe for local development: in-memory stores, heuristic
// generation only and no persistence. Production deployments typically
// configure a snapshot backend and a remote generator.
package aicore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/aicore/chat"
	"github.com/hupe1980/aicore/config"
	"github.com/hupe1980/aicore/core"
	"github.com/hupe1980/aicore/decision"
	"github.com/hupe1980/aicore/experience"
	"github.com/hupe1980/aicore/generator"
	"github.com/hupe1980/aicore/generator/anthropic"
	"github.com/hupe1980/aicore/generator/openai"
	"github.com/hupe1980/aicore/logging"
	"github.com/hupe1980/aicore/pattern"
	"github.com/hupe1980/aicore/persistence"
	"github.com/hupe1980/aicore/persistence/sqlite"
	"github.com/hupe1980/aicore/personality"
	"github.com/hupe1980/aicore/session"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
)

// Options configures the Core instance.
type Options struct {
	// Remote generator tried before the heuristic fallback. Nil means
	// heuristic-only.
	Remote generator.Generator

	// RemoteTimeout bounds each remote generator call.
	RemoteTimeout time.Duration

	// ContextLimit caps experiences retrieved per chat message.
	ContextLimit int

	// SnapshotStore enables persistence when set. Nil keeps everything
	// in memory only.
	SnapshotStore core.SnapshotStore

	// SnapshotInterval between automatic snapshots. Defaults to
	// persistence.DefaultInterval.
	SnapshotInterval time.Duration

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Stats summarizes the engine state.
type Stats struct {
	TotalExperiences int                 `json:"total_experiences"`
	TotalPatterns    int                 `json:"total_patterns"`
	TopPatterns      []core.PatternEntry `json:"top_patterns"`
}

// PatternDetail is a pattern entry enriched with the contents of the
// experiences it was observed in.
type PatternDetail struct {
	core.PatternEntry
	RelatedContents []string `json:"related_contents"`
}

// Core is the high-level façade aggregating the stores and engines.
type Core struct {
	// mu orders writes that touch the store and the index together
	// (create, clear, rebuild) so the index never drifts from the store.
	mu sync.Mutex

	store       core.ExperienceStore
	index       core.PatternIndex
	decisions   *decision.Engine
	personality *personality.Model
	chat        *chat.Engine
	snapshots   *persistence.Manager
	closers     []func() error
	logger      logging.Logger
}

// New creates a new Core with optional overrides. When a snapshot store is
// configured the latest snapshot is loaded before the first request and the
// periodic snapshot loop is started.
func New(optFns ...func(o *Options)) *Core {
	opts := Options{
		RemoteTimeout:    chat.DefaultRemoteTimeout,
		ContextLimit:     chat.DefaultContextLimit,
		SnapshotInterval: persistence.DefaultInterval,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.OrNoOp(opts.Logger)

	// CoreLoggers fan out into per-component loggers; any other Logger
	// implementation is shared as-is.
	component := func(name string) logging.Logger {
		if cl, ok := logger.(*logging.CoreLogger); ok {
			return cl.WithComponent(name)
		}
		return logger
	}

	store := experience.NewInMemoryStore()
	index := pattern.NewIndex()
	model := personality.New(func(o *personality.Options) { o.Logger = component("personality") })

	c := &Core{
		store:       store,
		index:       index,
		decisions:   decision.New(store, index, func(o *decision.Options) { o.Logger = component("decision") }),
		personality: model,
		chat: chat.New(store, session.NewInMemoryStore(), func(o *chat.Options) {
			o.Remote = opts.Remote
			o.RemoteTimeout = opts.RemoteTimeout
			o.ContextLimit = opts.ContextLimit
			o.Logger = component("chat")
		}),
		logger: logger,
	}

	if opts.SnapshotStore != nil {
		c.snapshots = persistence.NewManager(opts.SnapshotStore, c.capture, func(o *persistence.Options) {
			o.Interval = opts.SnapshotInterval
			o.Logger = component("persistence")
		})
		if snap, ok := c.snapshots.Load(context.Background()); ok {
			c.restore(snap)
			logger.Info("snapshot restored", "experiences", len(snap.Experiences), "taken_at", snap.TakenAt)
		}
		c.snapshots.Start()
	}

	return c
}

// NewFromConfig builds a Core from a loaded configuration: logger, remote
// generator and snapshot backend are all wired from it. Option functions run
// last and may override any derived setting.
func NewFromConfig(cfg config.Config, optFns ...func(o *Options)) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.New(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})

	var remote generator.Generator
	switch cfg.Generator.Provider {
	case config.ProviderOpenAI:
		remote = openai.NewGenerator(func(o *openai.Options) {
			if cfg.Generator.Model != "" {
				o.Model = cfg.Generator.Model
			}
			o.APIKey = cfg.Generator.APIKey
			o.BaseURL = cfg.Generator.BaseURL
		})
	case config.ProviderAnthropic:
		remote = anthropic.NewGenerator(func(o *anthropic.Options) {
			if cfg.Generator.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Generator.Model)
			}
			o.APIKey = cfg.Generator.APIKey
		})
	}

	var snapStore core.SnapshotStore
	var closers []func() error
	switch cfg.Snapshot.Backend {
	case config.BackendSQLite:
		s, err := sqlite.NewStore(cfg.Snapshot.Path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot backend: %w", err)
		}
		snapStore = s
		closers = append(closers, s.Close)
	default:
		snapStore = persistence.NewFileStore(cfg.Snapshot.Path)
	}

	c := New(append([]func(o *Options){func(o *Options) {
		o.Remote = remote
		o.RemoteTimeout = cfg.Generator.Timeout.Std()
		o.SnapshotStore = snapStore
		o.SnapshotInterval = cfg.Snapshot.Interval.Std()
		o.Logger = logger
	}}, optFns...)...)
	c.closers = closers
	return c, nil
}

// capture assembles a point-in-time snapshot under shared access only.
func (c *Core) capture() core.Snapshot {
	state := c.personality.State()
	return core.Snapshot{
		Experiences: c.store.List(),
		Personality: &state,
	}
}

// restore applies a loaded snapshot: experiences wholesale, index rebuilt
// from them, personality state clamped in.
func (c *Core) restore(snap core.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Restore(snap.Experiences)
	c.index.RebuildAll(c.store.List())
	if snap.Personality != nil {
		c.personality.Restore(*snap.Personality)
	}
}

// CreateExperience validates, stores and indexes a new experience. The
// pattern index is updated incrementally; no full rebuild happens on the
// write path.
func (c *Core) CreateExperience(content, source, metadata string) (core.Experience, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, err := c.store.Insert(content, source, metadata)
	if err != nil {
		return core.Experience{}, err
	}
	c.index.Observe(exp)
	c.logger.Debug("experience created", "id", exp.ID, "source", exp.Source)
	return exp, nil
}

// GetExperience returns the experience with the given id or ErrNotFound.
func (c *Core) GetExperience(id string) (core.Experience, error) {
	return c.store.Get(id)
}

// ListExperiences returns all experiences in insertion order.
func (c *Core) ListExperiences() []core.Experience {
	return c.store.List()
}

// SearchExperiences returns experiences whose content contains the keyword,
// case-insensitively, in insertion order.
func (c *Core) SearchExperiences(keyword string) []core.Experience {
	return c.store.Search(keyword)
}

// ClearExperiences removes every experience and resets the pattern index in
// one step, returning the number removed. A snapshot taken afterwards
// persists the empty state; cleared data never resurfaces.
func (c *Core) ClearExperiences() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.store.Clear()
	c.index.Clear()
	c.logger.Info("experiences cleared", "removed", n)
	return n
}

// Stats reports aggregate counts and the strongest patterns.
func (c *Core) Stats() Stats {
	return Stats{
		TotalExperiences: c.store.Len(),
		TotalPatterns:    c.index.Len(),
		TopPatterns:      c.index.Top(10),
	}
}

// TopPatterns returns the n most frequent patterns; negative n returns all.
func (c *Core) TopPatterns(n int) []core.PatternEntry {
	return c.index.Top(n)
}

// PatternDetail returns the entry for a keyword together with the contents
// of the experiences it appears in, or ErrNotFound.
func (c *Core) PatternDetail(keyword string) (PatternDetail, error) {
	entry, err := c.index.Detail(keyword)
	if err != nil {
		return PatternDetail{}, err
	}
	contents := make([]string, 0, len(entry.ExperienceIDs))
	for _, id := range entry.ExperienceIDs {
		exp, err := c.store.Get(id)
		if err != nil {
			continue
		}
		contents = append(contents, exp.Content)
	}
	return PatternDetail{PatternEntry: entry, RelatedContents: contents}, nil
}

// RebuildPatterns recomputes the index from the store. The result is
// identical to what incremental updates produced; exposed for operational
// reassurance.
func (c *Core) RebuildPatterns() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index.RebuildAll(c.store.List())
}

// Decide scores a global decision from the current store and index state.
func (c *Core) Decide() core.Decision {
	return c.decisions.Decide()
}

// DecideFor scores a decision restricted to experiences matching the query.
func (c *Core) DecideFor(query string) core.Decision {
	return c.decisions.DecideFor(query)
}

// UpdatePersonality feeds one interaction through the trait model and
// returns the new state with the decorated response.
func (c *Core) UpdatePersonality(input, response string) personality.Update {
	return c.personality.Update(input, response)
}

// PersonalityState returns a copy of the current trait state.
func (c *Core) PersonalityState() core.PersonalityState {
	return c.personality.State()
}

// ResetPersonality returns every trait to the balanced starting point.
func (c *Core) ResetPersonality() {
	c.personality.Reset()
}

// Send processes one chat message end to end. An empty sessionID starts a
// fresh session; the returned result carries the id for follow-ups.
func (c *Core) Send(ctx context.Context, sessionID, content string) (chat.SendResult, error) {
	return c.chat.Send(ctx, sessionID, content)
}

// GetHistory returns a copy of the session's messages or ErrNotFound.
func (c *Core) GetHistory(sessionID string) (*core.ChatSession, error) {
	return c.chat.GetHistory(sessionID)
}

// ListSessionIDs returns the ids of all known chat sessions.
func (c *Core) ListSessionIDs() []string {
	return c.chat.ListSessionIDs()
}

// ClearSession removes a chat session entirely or returns ErrNotFound.
func (c *Core) ClearSession(sessionID string) error {
	return c.chat.ClearSession(sessionID)
}

// ExportSession renders a session as json, txt or markdown.
func (c *Core) ExportSession(sessionID, format string) (string, error) {
	sess, err := c.chat.GetHistory(sessionID)
	if err != nil {
		return "", err
	}
	return chat.Export(sess, format)
}

// Snapshot writes a snapshot immediately. No-op without a snapshot store.
func (c *Core) Snapshot(ctx context.Context) error {
	if c.snapshots == nil {
		return nil
	}
	return c.snapshots.Snapshot(ctx)
}

// Close stops the snapshot loop, writes a final snapshot and releases any
// backend resources. Safe to call multiple times.
func (c *Core) Close(ctx context.Context) error {
	var firstErr error
	if c.snapshots != nil {
		if err := c.snapshots.Stop(ctx); err != nil {
			firstErr = err
		}
	}
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
