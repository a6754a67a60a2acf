package adaptive

import "testing"

func TestEvaluateScoring(t *testing.T) {
	engine := NewEngine(nil) // default config

	testCases := []struct {
		name          string
		state         State
		difficulty    int
		correct       bool
		attempts      int
		wantScore     int
		wantStreak    int
		wantEnd       bool
		wantNext      int
		wantDifficult int
	}{
		{
			name:          "correct mid difficulty moves up",
			state:         State{CurrentDifficulty: 5},
			difficulty:    5,
			correct:       true,
			attempts:      1,
			wantScore:     1,
			wantNext:      6,
			wantDifficult: 5,
		},
		{
			name:          "wrong mid difficulty moves down",
			state:         State{Score: 2, CurrentDifficulty: 5},
			difficulty:    5,
			correct:       false,
			attempts:      3,
			wantScore:     2,
			wantNext:      4,
			wantDifficult: 5,
		},
		{
			name:          "correct at nine targets ten",
			state:         State{Score: 4, CurrentDifficulty: 9},
			difficulty:    9,
			correct:       true,
			attempts:      5,
			wantScore:     5,
			wantNext:      10,
			wantDifficult: 9,
		},
		{
			name:          "correct at ten grows streak and stays at ten",
			state:         State{Score: 5, CurrentDifficulty: 10},
			difficulty:    10,
			correct:       true,
			attempts:      6,
			wantScore:     6,
			wantStreak:    1,
			wantNext:      10,
			wantDifficult: 10,
		},
		{
			name:          "wrong at minimum difficulty ends",
			state:         State{Score: 1, CurrentDifficulty: 2},
			difficulty:    1,
			correct:       false,
			attempts:      4,
			wantScore:     1,
			wantEnd:       true,
			wantDifficult: 1,
		},
		{
			name:          "twentieth attempt ends regardless of correctness",
			state:         State{Score: 9, CurrentDifficulty: 6},
			difficulty:    6,
			correct:       true,
			attempts:      20,
			wantScore:     10,
			wantEnd:       true,
			wantDifficult: 6,
		},
		{
			name:          "third straight correct at ten ends",
			state:         State{Score: 7, CurrentDifficulty: 10, ConsecutiveCorrect: 2},
			difficulty:    10,
			correct:       true,
			attempts:      9,
			wantScore:     8,
			wantStreak:    3,
			wantEnd:       true,
			wantDifficult: 10,
		},
		{
			name:          "streak carries over a wrong answer",
			state:         State{Score: 6, CurrentDifficulty: 10, ConsecutiveCorrect: 2},
			difficulty:    10,
			correct:       false,
			attempts:      8,
			wantScore:     6,
			wantStreak:    2,
			wantNext:      9,
			wantDifficult: 10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state, decision := engine.Evaluate(tc.state, tc.difficulty, tc.correct, tc.attempts)

			if state.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", state.Score, tc.wantScore)
			}
			if state.ConsecutiveCorrect != tc.wantStreak {
				t.Errorf("streak = %d, want %d", state.ConsecutiveCorrect, tc.wantStreak)
			}
			if state.CurrentDifficulty != tc.wantDifficult {
				t.Errorf("difficulty = %d, want %d", state.CurrentDifficulty, tc.wantDifficult)
			}
			if decision.ShouldEndTest != tc.wantEnd {
				t.Errorf("shouldEndTest = %v, want %v", decision.ShouldEndTest, tc.wantEnd)
			}
			if !tc.wantEnd && decision.NextDifficulty != tc.wantNext {
				t.Errorf("nextDifficulty = %d, want %d", decision.NextDifficulty, tc.wantNext)
			}
			if decision.IsCorrect != tc.correct {
				t.Errorf("isCorrect = %v, want %v", decision.IsCorrect, tc.correct)
			}
		})
	}
}

func TestNewStateStartsAtFive(t *testing.T) {
	engine := NewEngine(nil)
	state := engine.NewState()
	if state.CurrentDifficulty != 5 {
		t.Errorf("start difficulty = %d, want 5", state.CurrentDifficulty)
	}
	if state.Score != 0 || state.ConsecutiveCorrect != 0 {
		t.Errorf("fresh state not zeroed: %+v", state)
	}
}

// Every session terminates within MaxAttempts submissions, no matter the
// answer sequence.
func TestTerminationBound(t *testing.T) {
	engine := NewEngine(nil)

	sequences := []struct {
		name    string
		correct func(attempt int) bool
	}{
		{"always correct", func(int) bool { return true }},
		{"always wrong at floor is immediate", func(int) bool { return false }},
		{"alternating", func(i int) bool { return i%2 == 0 }},
	}

	for _, seq := range sequences {
		t.Run(seq.name, func(t *testing.T) {
			state := engine.NewState()
			difficulty := state.CurrentDifficulty
			for attempt := 1; attempt <= 25; attempt++ {
				var decision Decision
				state, decision = engine.Evaluate(state, difficulty, seq.correct(attempt), attempt)
				if decision.ShouldEndTest {
					if attempt > 20 {
						t.Fatalf("session survived %d attempts", attempt)
					}
					return
				}
				if decision.NextDifficulty < 1 || decision.NextDifficulty > 10 {
					t.Fatalf("requested difficulty %d out of range", decision.NextDifficulty)
				}
				difficulty = decision.NextDifficulty
			}
			t.Fatal("session never terminated")
		})
	}
}

func TestCustomConfig(t *testing.T) {
	engine := NewEngine(&Config{
		StartDifficulty: 3,
		MinDifficulty:   1,
		MaxDifficulty:   5,
		MaxAttempts:     4,
		MaxStreak:       2,
	})

	if got := engine.StartDifficulty(); got != 3 {
		t.Errorf("start difficulty = %d, want 3", got)
	}

	state := State{CurrentDifficulty: 5, ConsecutiveCorrect: 1}
	state, decision := engine.Evaluate(state, 5, true, 2)
	if !decision.ShouldEndTest {
		t.Error("expected streak of 2 at max difficulty 5 to end the session")
	}
	if state.ConsecutiveCorrect != 2 {
		t.Errorf("streak = %d, want 2", state.ConsecutiveCorrect)
	}
}
