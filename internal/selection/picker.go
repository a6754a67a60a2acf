package selection

import (
	"context"
	"errors"

	"exam-service/internal/models"
	"exam-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Picker implements the next-question contract: a candidate belongs to
// the test's question set, has not been asked in the session, and sits at
// or above the target difficulty. The greater-or-equal threshold is
// deliberate slack so selection still succeeds when no question sits at
// the exact target.
type Picker struct {
	Questions   *repository.QuestionRepository
	Tests       *repository.TestRepository
	Submissions *repository.SubmissionRepository
}

func NewPicker(questions *repository.QuestionRepository, tests *repository.TestRepository, submissions *repository.SubmissionRepository) *Picker {
	return &Picker{
		Questions:   questions,
		Tests:       tests,
		Submissions: submissions,
	}
}

// NextQuestion returns the chosen question, or nil when no candidate
// exists (which ends the session).
func (p *Picker) NextQuestion(ctx context.Context, testID string, sessionID primitive.ObjectID, minDifficulty int) (*models.Question, error) {
	test, err := p.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	asked, err := p.Submissions.QuestionIDsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	question, err := p.Questions.FindCandidate(ctx, test.Questions, asked, minDifficulty)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

// FirstQuestion picks a session's opening question: exact difficulty
// match, no exclusions. Returns nil when the test has no question at that
// difficulty.
func (p *Picker) FirstQuestion(ctx context.Context, test *models.Test, difficulty int) (*models.Question, error) {
	question, err := p.Questions.FindAtDifficulty(ctx, test.Questions, difficulty)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}
