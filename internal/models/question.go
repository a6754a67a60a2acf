package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 10
)

type Question struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question   string             `bson:"question" json:"question"`
	Options    []string           `bson:"options" json:"options"`
	Answer     string             `bson:"answer" json:"answer"`
	Difficulty int                `bson:"difficulty" json:"difficulty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the invariants every stored question must hold.
func (q *Question) Validate() error {
	if q.Question == "" {
		return errors.New("question text is required")
	}
	if len(q.Options) == 0 {
		return errors.New("question must have at least one option")
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return errors.New("difficulty must be between 1 and 10")
	}
	for _, opt := range q.Options {
		if opt == q.Answer {
			return nil
		}
	}
	return errors.New("answer must match one of the options")
}

// PublicQuestion is the projection served to test takers. The correct
// answer never leaves the server while a session is running.
type PublicQuestion struct {
	ID         primitive.ObjectID `json:"id"`
	Question   string             `json:"question"`
	Options    []string           `json:"options"`
	Difficulty int                `json:"difficulty"`
}

func (q *Question) Public() *PublicQuestion {
	return &PublicQuestion{
		ID:         q.ID,
		Question:   q.Question,
		Options:    q.Options,
		Difficulty: q.Difficulty,
	}
}
