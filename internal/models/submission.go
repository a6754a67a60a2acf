package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is the append-only record of one submitted answer. Never
// updated, never deleted.
type Submission struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID  primitive.ObjectID `bson:"session_id" json:"sessionId"`
	QuestionID primitive.ObjectID `bson:"question_id" json:"questionId"`
	Answer     string             `bson:"answer" json:"answer"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
