package srs

// Params defines all configurable parameters for the spaced repetition
// schedule. The defaults implement the leveled ladder used by the learning
// engine: fixed steps for the first two correct answers, then multiplicative
// growth by the ease factor.
type Params struct {
	// MinEaseFactor is the floor the ease factor never drops below. There
	// is no ceiling; correct streaks raise the factor without bound.
	MinEaseFactor float64

	// Ease factor movement per answer
	CorrectEaseBonus     float64
	IncorrectEasePenalty float64

	// Fixed intervals for the first rungs of the ladder
	FirstInterval  int
	SecondInterval int

	// A word is mastered once its interval exceeds this many days
	MasteryThreshold int

	// An incorrect answer puts the word on the short-term relearn queue,
	// due again after this many minutes
	RelearnMinutes int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the corresponding default.
type ParamsConfig struct {
	MinEaseFactor float64

	CorrectEaseBonus     float64
	IncorrectEasePenalty float64

	FirstInterval  int
	SecondInterval int

	MasteryThreshold int
	RelearnMinutes   int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,

		CorrectEaseBonus:     0.1,
		IncorrectEasePenalty: 0.2,

		FirstInterval:  1,
		SecondInterval: 3,

		MasteryThreshold: 20,
		RelearnMinutes:   1,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}

	if config.CorrectEaseBonus > 0 {
		params.CorrectEaseBonus = config.CorrectEaseBonus
	}
	if config.IncorrectEasePenalty > 0 {
		params.IncorrectEasePenalty = config.IncorrectEasePenalty
	}

	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	if config.MasteryThreshold > 0 {
		params.MasteryThreshold = config.MasteryThreshold
	}
	if config.RelearnMinutes > 0 {
		params.RelearnMinutes = config.RelearnMinutes
	}

	return params
}
