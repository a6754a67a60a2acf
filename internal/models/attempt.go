package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttemptedAnswer struct {
	QuestionID primitive.ObjectID `json:"questionId"`
	Answer     string             `json:"answer"`
}

type AttemptedQuestion struct {
	ID         primitive.ObjectID `json:"id"`
	Question   string             `json:"question"`
	Difficulty int                `json:"difficulty"`
	Answer     string             `json:"answer"`
}

// AttemptedTest is the per-session report for a completed attempt: the test
// it belonged to, the questions the test covers, what the user answered and
// how many of those answers matched.
type AttemptedTest struct {
	ID               primitive.ObjectID  `json:"id"`
	TestID           primitive.ObjectID  `json:"testId"`
	Score            int                 `json:"score"`
	Completed        bool                `json:"completed"`
	UpdatedAt        time.Time           `json:"updatedAt"`
	Test             *TestSummary        `json:"test,omitempty"`
	Questions        []AttemptedQuestion `json:"questions"`
	SubmittedAnswers []AttemptedAnswer   `json:"submittedAnswers"`
	CorrectCount     int                 `json:"correctCount"`
	WrongCount       int                 `json:"wrongCount"`
}
