package adaptive

// Engine enforces the adaptive difficulty protocol for a session: score
// and streak bookkeeping, the one-unit difficulty ratchet and the
// termination rules. It performs no I/O.
type Engine struct {
	config *Config
}

func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{config: config}
}

// NewState is the state every session starts from.
func (e *Engine) NewState() State {
	return State{CurrentDifficulty: e.config.StartDifficulty}
}

// StartDifficulty is the exact difficulty of a session's first question.
func (e *Engine) StartDifficulty() int {
	return e.config.StartDifficulty
}

// Evaluate applies one answered question to the session state and decides
// whether the session ends. totalAttempts counts all submissions for the
// session, including the one being evaluated.
//
// The session ends when any of these holds:
//   - totalAttempts reached MaxAttempts,
//   - the answer was wrong at MinDifficulty (nothing easier exists),
//   - the streak of correct answers at MaxDifficulty reached MaxStreak.
//
// The streak is intentionally never reset on a wrong answer; it carries
// over, matching the shipped behavior of the protocol.
func (e *Engine) Evaluate(state State, questionDifficulty int, correct bool, totalAttempts int) (State, Decision) {
	if correct {
		state.Score++
		if questionDifficulty == e.config.MaxDifficulty {
			state.ConsecutiveCorrect++
		}
	}
	// Difficulty is stamped from the question just answered, not from the
	// next question chosen.
	state.CurrentDifficulty = questionDifficulty

	dec := Decision{IsCorrect: correct}
	switch {
	case totalAttempts >= e.config.MaxAttempts:
		dec.ShouldEndTest = true
	case !correct && questionDifficulty == e.config.MinDifficulty:
		dec.ShouldEndTest = true
	case state.ConsecutiveCorrect >= e.config.MaxStreak:
		dec.ShouldEndTest = true
	default:
		// The target never leaves the difficulty range: at the top it
		// stays at MaxDifficulty so further max-difficulty questions can
		// be served and the streak rule can trigger; the bottom is
		// unreachable because a wrong answer at MinDifficulty ends the
		// session above.
		if correct {
			dec.NextDifficulty = questionDifficulty + 1
			if dec.NextDifficulty > e.config.MaxDifficulty {
				dec.NextDifficulty = e.config.MaxDifficulty
			}
		} else {
			dec.NextDifficulty = questionDifficulty - 1
			if dec.NextDifficulty < e.config.MinDifficulty {
				dec.NextDifficulty = e.config.MinDifficulty
			}
		}
	}
	return state, dec
}
