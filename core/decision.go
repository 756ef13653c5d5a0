package core

import "time"

// Decision actions. The mapping from store aggregates to an action is
// deterministic given identical store state.
const (
	// ActionObserve is chosen when no experiences exist yet.
	ActionObserve = "observe"
	// ActionRespond is chosen when experiences outnumber distinct patterns.
	ActionRespond = "respond"
	// ActionExplore is chosen when patterns dominate the experience count.
	ActionExplore = "explore"
	// ActionClarify is the fixed low-confidence action for query-scoped
	// decisions with no matching experiences.
	ActionClarify = "clarify"
)

// Decision is a heuristic action/confidence/reasoning triple computed from
// aggregate counts over the experience store and pattern index.
type Decision struct {
	Action     string    `json:"action"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	BasedOn    int       `json:"based_on_experiences"`
	Timestamp  time.Time `json:"timestamp"`
}
