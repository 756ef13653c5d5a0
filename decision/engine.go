// Package decision scores actions from aggregate counts over the experience
// store and the derived pattern index. Scoring is deterministic: identical
// store state always yields the identical decision.
package decision

import (
	"fmt"
	"time"

	"github.com/hupe1980/aicore/core"
	"github.com/hupe1980/aicore/logging"
	"github.com/hupe1980/aicore/pattern"
)

// Options configures the decision engine.
type Options struct {
	// Logger for decision tracing. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Engine derives heuristic decisions. It only ever takes shared (read)
// access to the store and index.
type Engine struct {
	store  core.ExperienceStore
	index  core.PatternIndex
	logger logging.Logger
}

// New constructs a decision engine over the given store and index.
func New(store core.ExperienceStore, index core.PatternIndex, optFns ...func(o *Options)) *Engine {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{store: store, index: index, logger: logging.OrNoOp(opts.Logger)}
}

// confidence maps aggregate counts onto [0,1]. Monotonically non-decreasing
// in both arguments: growing either count never lowers the result.
func confidence(experiences, patterns int) float64 {
	switch {
	case experiences == 0:
		return 0.5
	case experiences > 10 && patterns > 20:
		return 0.9
	case experiences > 5:
		return 0.7
	default:
		return 0.6
	}
}

// chooseAction maps aggregates onto the fixed action set: responding when
// lived experience dominates, exploring when the vocabulary outgrows it.
func chooseAction(experiences, patterns int) string {
	if experiences == 0 {
		return core.ActionObserve
	}
	if experiences > patterns {
		return core.ActionRespond
	}
	return core.ActionExplore
}

// Decide scores a global decision from total experiences and total distinct
// patterns.
func (e *Engine) Decide() core.Decision {
	experiences := e.store.Len()
	patterns := e.index.Len()

	d := core.Decision{
		Action:     chooseAction(experiences, patterns),
		Confidence: confidence(experiences, patterns),
		BasedOn:    experiences,
		Timestamp:  time.Now().UTC(),
	}
	if experiences == 0 {
		d.Reasoning = "no experiences recorded yet; defaulting to observation"
	} else if top := e.index.Top(1); len(top) > 0 {
		d.Reasoning = fmt.Sprintf("based on %d experiences and %d distinct patterns; top pattern %q", experiences, patterns, top[0].Keyword)
	} else {
		d.Reasoning = fmt.Sprintf("based on %d experiences and %d distinct patterns", experiences, patterns)
	}

	e.logger.Debug("decision made", "action", d.Action, "confidence", d.Confidence, "experiences", experiences, "patterns", patterns)
	return d
}

// DecideFor scores a decision restricted to experiences and patterns whose
// keywords intersect the query's extracted keyword set. With no match it
// returns the fixed low-confidence clarification action.
func (e *Engine) DecideFor(query string) core.Decision {
	keywords := pattern.Keywords(query)

	matchedIDs := make(map[string]struct{})
	matchedPatterns := 0
	for _, kw := range keywords {
		entry, err := e.index.Detail(kw)
		if err != nil {
			continue
		}
		matchedPatterns++
		for _, id := range entry.ExperienceIDs {
			matchedIDs[id] = struct{}{}
		}
	}

	if len(matchedIDs) == 0 {
		d := core.Decision{
			Action:     core.ActionClarify,
			Confidence: 0.3,
			Reasoning:  fmt.Sprintf("no relevant experiences found for query %q", query),
			BasedOn:    0,
			Timestamp:  time.Now().UTC(),
		}
		e.logger.Debug("decision made", "action", d.Action, "query", query)
		return d
	}

	experiences := len(matchedIDs)
	d := core.Decision{
		Action:     chooseAction(experiences, matchedPatterns),
		Confidence: confidence(experiences, matchedPatterns),
		Reasoning:  fmt.Sprintf("found %d relevant experiences across %d matching patterns for query %q", experiences, matchedPatterns, query),
		BasedOn:    experiences,
		Timestamp:  time.Now().UTC(),
	}
	e.logger.Debug("decision made", "action", d.Action, "confidence", d.Confidence, "query", query)
	return d
}
