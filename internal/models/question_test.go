package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validQuestion() *Question {
	return &Question{
		ID:         primitive.NewObjectID(),
		Question:   "What is the capital of France?",
		Options:    []string{"Paris", "Lyon", "Marseille"},
		Answer:     "Paris",
		Difficulty: 5,
	}
}

func TestQuestionValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"missing text", func(q *Question) { q.Question = "" }, true},
		{"no options", func(q *Question) { q.Options = nil }, true},
		{"answer not an option", func(q *Question) { q.Answer = "Berlin" }, true},
		{"difficulty below range", func(q *Question) { q.Difficulty = 0 }, true},
		{"difficulty above range", func(q *Question) { q.Difficulty = 11 }, true},
		{"difficulty at floor", func(q *Question) { q.Difficulty = 1 }, false},
		{"difficulty at ceiling", func(q *Question) { q.Difficulty = 10 }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion()
			tc.mutate(q)
			err := q.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestPublicProjection(t *testing.T) {
	q := validQuestion()
	pub := q.Public()

	if pub.ID != q.ID {
		t.Errorf("id = %v, want %v", pub.ID, q.ID)
	}
	if pub.Question != q.Question {
		t.Errorf("question = %q, want %q", pub.Question, q.Question)
	}
	if pub.Difficulty != q.Difficulty {
		t.Errorf("difficulty = %d, want %d", pub.Difficulty, q.Difficulty)
	}
	if len(pub.Options) != len(q.Options) {
		t.Errorf("options = %v, want %v", pub.Options, q.Options)
	}
}

func TestTestValidate(t *testing.T) {
	test := &Test{Title: "Geography", Questions: []primitive.ObjectID{primitive.NewObjectID()}}
	if err := test.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	test.Questions = nil
	if err := test.Validate(); err == nil {
		t.Error("expected error for empty question set")
	}

	test = &Test{Questions: []primitive.ObjectID{primitive.NewObjectID()}}
	if err := test.Validate(); err == nil {
		t.Error("expected error for missing title")
	}
}
