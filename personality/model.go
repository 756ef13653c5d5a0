// Package personality tracks a small trait state mutated by interaction
// text. Inputs are classified against three disjoint trigger-word sets; each
// match nudges exactly its own trait, clamped to [0,1], so an input touching
// only one set never perturbs the other two.
package personality

import (
	"strings"
	"sync"

	"github.com/hupe1980/aicore/core"
	"github.com/hupe1980/aicore/logging"
)

// Trait steps per matching input.
const (
	curiosityStep = 0.1
	happinessStep = 0.1
	cautionStep   = 0.2
)

// Trigger sets. Disjoint: no marker appears in more than one set.
var (
	curiosityTriggers = []string{"apa", "mengapa", "bagaimana", "kenapa", "what", "why", "how", "?"}
	happinessTriggers = []string{"halo", "hello", "terima kasih", "thanks", "thank you", "senang"}
	cautionTriggers   = []string{"bahaya", "awas", "error", "warning", "gagal", "danger"}
)

// Markers prepended to responses per dominant trait.
var traitMarkers = map[string]string{
	core.TraitCurious:  "🤔",
	core.TraitHappy:    "😊",
	core.TraitCautious: "⚠️",
}

// Update is the result of feeding one interaction through the model.
type Update struct {
	State             core.PersonalityState `json:"state"`
	DominantTrait     string                `json:"dominant_trait"`
	DecoratedResponse string                `json:"decorated_response"`
}

// Options configures the personality model.
type Options struct {
	// Initial overrides the balanced starting state.
	Initial core.PersonalityState
	// Logger for trait tracing. Defaults to NoOp if nil.
	Logger logging.Logger
}

// Model holds the mutable trait state. Safe for concurrent use: Update takes
// exclusive access only for the in-memory mutation.
type Model struct {
	mu     sync.RWMutex
	state  core.PersonalityState
	logger logging.Logger
}

// New constructs a model with balanced traits unless overridden.
func New(optFns ...func(o *Options)) *Model {
	opts := Options{Initial: core.NewPersonalityState()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{state: opts.Initial, logger: logging.OrNoOp(opts.Logger)}
}

func containsAny(input string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(input, t) {
			return true
		}
	}
	return false
}

// Update classifies input, mutates matching traits and decorates response
// with the dominant trait's marker.
func (m *Model) Update(input, response string) Update {
	lower := strings.ToLower(input)

	m.mu.Lock()
	if containsAny(lower, curiosityTriggers) {
		m.state.Curiosity += curiosityStep
	}
	if containsAny(lower, happinessTriggers) {
		m.state.Happiness += happinessStep
	}
	if containsAny(lower, cautionTriggers) {
		m.state.Caution += cautionStep
	}
	m.state.Clamp()
	state := m.state
	m.mu.Unlock()

	dominant := state.Dominant()
	m.logger.Debug("personality updated", "dominant", dominant, "curiosity", state.Curiosity, "happiness", state.Happiness, "caution", state.Caution)

	return Update{
		State:             state,
		DominantTrait:     dominant,
		DecoratedResponse: traitMarkers[dominant] + " " + response,
	}
}

// State returns a copy of the current trait state.
func (m *Model) State() core.PersonalityState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Restore replaces the trait state wholesale (snapshot load).
func (m *Model) Restore(state core.PersonalityState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state.Clamp()
	m.state = state
}

// Reset returns every trait to the balanced starting point.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = core.NewPersonalityState()
}
