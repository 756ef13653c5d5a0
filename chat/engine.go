// Package chat orchestrates the per-message pipeline: keyword extraction,
// context retrieval from the experience store, response generation through a
// Generator, and recording into the session store. Each message walks the
// fixed phase sequence KeywordExtraction -> ContextRetrieval -> Generation
// -> Recorded; the remote-to-heuristic fallback is an explicit transition
// inside the Generation phase, never a user-visible error.
package chat

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/aicore/core"
	"github.com/hupe1980/aicore/generator"
	"github.com/hupe1980/aicore/logging"
	"github.com/hupe1980/aicore/pattern"
)

// DefaultContextLimit is K, the maximum number of experiences retrieved per
// message.
const DefaultContextLimit = 5

// DefaultRemoteTimeout bounds a single remote generator call.
const DefaultRemoteTimeout = 30 * time.Second

// Options configures the chat engine.
type Options struct {
	// Remote is tried first when set; any error or timeout falls back to
	// the deterministic heuristic generator.
	Remote generator.Generator

	// RemoteTimeout bounds each remote call. Defaults to
	// DefaultRemoteTimeout.
	RemoteTimeout time.Duration

	// ContextLimit caps retrieved experiences per message. Defaults to
	// DefaultContextLimit.
	ContextLimit int

	// Logger for pipeline tracing. Defaults to NoOp if nil.
	Logger logging.Logger
}

// SendResult is the outcome of processing one user message.
type SendResult struct {
	SessionID    string           `json:"session_id"`
	Message      core.ChatMessage `json:"message"`
	ContextCount int              `json:"context_count"`
}

// Engine drives chat conversations. It takes only shared access to the
// experience store (a context snapshot), never holds any lock across the
// Generator call, and appends the resulting messages afterwards.
type Engine struct {
	store         core.ExperienceStore
	sessions      core.SessionStore
	heuristic     *generator.Heuristic
	remote        generator.Generator
	remoteTimeout time.Duration
	contextLimit  int
	logger        logging.Logger
}

// New constructs a chat engine over the given stores.
func New(store core.ExperienceStore, sessions core.SessionStore, optFns ...func(o *Options)) *Engine {
	opts := Options{
		RemoteTimeout: DefaultRemoteTimeout,
		ContextLimit:  DefaultContextLimit,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ContextLimit <= 0 {
		opts.ContextLimit = DefaultContextLimit
	}
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = DefaultRemoteTimeout
	}
	return &Engine{
		store:         store,
		sessions:      sessions,
		heuristic:     generator.NewHeuristic(),
		remote:        opts.Remote,
		remoteTimeout: opts.RemoteTimeout,
		contextLimit:  opts.ContextLimit,
		logger:        logging.OrNoOp(opts.Logger),
	}
}

// Send processes one user message end to end and returns the assistant
// reply. An empty sessionID creates a fresh session.
func (e *Engine) Send(ctx context.Context, sessionID, content string) (SendResult, error) {
	if strings.TrimSpace(content) == "" {
		return SendResult{}, core.NewValidationError("content", "must not be empty")
	}
	if sessionID == "" {
		sessionID = core.NewSessionID()
	}

	// KeywordExtraction
	keywords := pattern.Keywords(content)

	// ContextRetrieval: snapshot under shared access, release before
	// generation.
	bundle := e.retrieveContext(keywords)
	contextIDs := make([]string, 0, len(bundle))
	for _, item := range bundle {
		contextIDs = append(contextIDs, item.ID)
	}

	// Generation: no lock is held here; a remote call may block on network
	// I/O for up to remoteTimeout.
	req := generator.Request{Input: content, Context: bundle, Keywords: dominantKeywords(bundle)}
	reply := e.generate(ctx, req)

	// Recorded: exclusive access only for the appends.
	userMsg := core.NewUserMessage(content)
	assistantMsg := core.NewAssistantMessage(reply, contextIDs)
	if err := e.sessions.Append(sessionID, userMsg); err != nil {
		return SendResult{}, err
	}
	if err := e.sessions.Append(sessionID, assistantMsg); err != nil {
		return SendResult{}, err
	}

	e.logger.Debug("message processed", "session_id", sessionID, "keywords", len(keywords), "context", len(bundle))
	return SendResult{SessionID: sessionID, Message: assistantMsg, ContextCount: len(bundle)}, nil
}

// retrieveContext ranks experiences by distinct-keyword overlap with the
// message, ties broken by recency (most recent first), and returns up to
// contextLimit items.
func (e *Engine) retrieveContext(keywords []string) []generator.ContextItem {
	if len(keywords) == 0 {
		return nil
	}
	type scored struct {
		exp     core.Experience
		overlap int
		pos     int
	}
	var candidates []scored
	for pos, exp := range e.store.List() {
		tokens := make(map[string]struct{})
		for _, tok := range pattern.Tokenize(exp.Content) {
			tokens[tok] = struct{}{}
		}
		overlap := 0
		for _, kw := range keywords {
			if _, ok := tokens[kw]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			candidates = append(candidates, scored{exp: exp, overlap: overlap, pos: pos})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		return candidates[i].pos > candidates[j].pos
	})
	if len(candidates) > e.contextLimit {
		candidates = candidates[:e.contextLimit]
	}
	bundle := make([]generator.ContextItem, len(candidates))
	for i, c := range candidates {
		bundle[i] = generator.ContextItem{ID: c.exp.ID, Content: c.exp.Content, Source: c.exp.Source}
	}
	return bundle
}

// dominantKeywords extracts the strongest tokens of the retrieved bundle for
// the heuristic reply: descending occurrence count, ties alphabetical.
func dominantKeywords(bundle []generator.ContextItem) []string {
	counts := make(map[string]int)
	for _, item := range bundle {
		for _, tok := range pattern.Tokenize(item.Content) {
			counts[tok]++
		}
	}
	kws := make([]string, 0, len(counts))
	for kw := range counts {
		kws = append(kws, kw)
	}
	sort.Slice(kws, func(i, j int) bool {
		if counts[kws[i]] != counts[kws[j]] {
			return counts[kws[i]] > counts[kws[j]]
		}
		return kws[i] < kws[j]
	})
	return kws
}

// generate runs the Generation phase. With a remote generator configured it
// is tried first under the bounded timeout; any failure transitions to the
// heuristic, which cannot fail.
func (e *Engine) generate(ctx context.Context, req generator.Request) string {
	if e.remote != nil {
		remoteCtx, cancel := context.WithTimeout(ctx, e.remoteTimeout)
		start := time.Now()
		reply, err := e.remote.Generate(remoteCtx, req)
		cancel()
		logging.LogGeneratorCall(e.logger, e.remote.Info().Name, time.Since(start), err)
		if err == nil {
			return reply
		}
	}
	reply, _ := e.heuristic.Generate(ctx, req)
	return reply
}

// GetHistory returns a clone of the session or ErrNotFound.
func (e *Engine) GetHistory(id string) (*core.ChatSession, error) {
	return e.sessions.Get(id)
}

// ListSessionIDs returns the ids of all known sessions.
func (e *Engine) ListSessionIDs() []string {
	return e.sessions.ListIDs()
}

// ClearSession removes a session entirely or returns ErrNotFound.
func (e *Engine) ClearSession(id string) error {
	return e.sessions.Clear(id)
}
