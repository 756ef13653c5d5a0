package core

// Trait names, also the fixed tie-break precedence for the dominant trait.
const (
	TraitCurious  = "curious"
	TraitHappy    = "happy"
	TraitCautious = "cautious"
)

// PersonalityState holds the three bounded trait counters. Values accumulate
// monotonically under clamping; there is no decay.
type PersonalityState struct {
	Curiosity float64 `json:"curiosity"`
	Happiness float64 `json:"happiness"`
	Caution   float64 `json:"caution"`
}

// NewPersonalityState returns a balanced starting state.
func NewPersonalityState() PersonalityState {
	return PersonalityState{Curiosity: 0.5, Happiness: 0.5, Caution: 0.5}
}

// Clamp bounds every trait to [0, 1] in place.
func (p *PersonalityState) Clamp() {
	p.Curiosity = clamp01(p.Curiosity)
	p.Happiness = clamp01(p.Happiness)
	p.Caution = clamp01(p.Caution)
}

// Dominant returns the trait with the strictly greatest value. Ties resolve
// in the fixed order curiosity, happiness, caution.
func (p PersonalityState) Dominant() string {
	switch {
	case p.Curiosity >= p.Happiness && p.Curiosity >= p.Caution:
		return TraitCurious
	case p.Happiness >= p.Caution:
		return TraitHappy
	default:
		return TraitCautious
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
