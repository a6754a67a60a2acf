package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserTestSession is one user's attempt at one test. Mutated only by the
// adaptive engine transition on each submitted answer; terminal once
// Completed flips to true.
type UserTestSession struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"user_id" json:"userId"`
	TestID             primitive.ObjectID `bson:"test_id" json:"testId"`
	Score              int                `bson:"score" json:"score"`
	Completed          bool               `bson:"completed" json:"completed"`
	CurrentDifficulty  int                `bson:"current_difficulty" json:"currentDifficulty"`
	ConsecutiveCorrect int                `bson:"consecutive_correct" json:"consecutiveCorrect"`
	CreatedAt          time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updatedAt"`
}
