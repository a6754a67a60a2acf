package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Test struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	URL         string               `bson:"url" json:"url"`
	Questions   []primitive.ObjectID `bson:"questions" json:"questions"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
}

func (t *Test) Validate() error {
	if t.Title == "" {
		return errors.New("test title is required")
	}
	if len(t.Questions) == 0 {
		return errors.New("test must reference at least one question")
	}
	return nil
}

// TestSummary is the share-link projection: enough to render a landing
// page, nothing that reveals the question set.
type TestSummary struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	URL         string             `json:"url"`
}

func (t *Test) Summary() *TestSummary {
	return &TestSummary{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		URL:         t.URL,
	}
}
