package adaptive

// Config bounds one adaptive session.
type Config struct {
	StartDifficulty int
	MinDifficulty   int
	MaxDifficulty   int
	MaxAttempts     int
	MaxStreak       int
}

func DefaultConfig() *Config {
	return &Config{
		StartDifficulty: 5,
		MinDifficulty:   1,
		MaxDifficulty:   10,
		MaxAttempts:     20,
		MaxStreak:       3,
	}
}

// State is the mutable part of a session, passed by value through the
// engine. Persisting it belongs to the caller.
type State struct {
	Score              int
	CurrentDifficulty  int
	ConsecutiveCorrect int
}

// Decision is what the engine concluded about one answer.
type Decision struct {
	IsCorrect     bool
	ShouldEndTest bool
	// NextDifficulty is the difficulty floor for the next question.
	// Meaningless when ShouldEndTest is set.
	NextDifficulty int
}
