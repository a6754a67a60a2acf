package service

import (
	"context"
	"errors"
	"time"

	"exam-service/internal/adaptive"
	"exam-service/internal/event"
	"exam-service/internal/models"
	"exam-service/internal/repository"
	"exam-service/internal/selection"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Narrow views of the repositories, covering only what the session flow
// touches. The concrete mongo repositories satisfy them.
type sessionStore interface {
	Create(ctx context.Context, session *models.UserTestSession) error
	FindLatestByUserAndTest(ctx context.Context, userID, testID primitive.ObjectID) (*models.UserTestSession, error)
	FindCompletedByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserTestSession, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) error
}

type submissionStore interface {
	Create(ctx context.Context, submission *models.Submission) error
	CountBySession(ctx context.Context, sessionID primitive.ObjectID) (int64, error)
	FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Submission, error)
}

type questionStore interface {
	FindByID(ctx context.Context, id string) (*models.Question, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error)
}

type testStore interface {
	FindByID(ctx context.Context, id string) (*models.Test, error)
}

type questionPicker interface {
	FirstQuestion(ctx context.Context, test *models.Test, difficulty int) (*models.Question, error)
	NextQuestion(ctx context.Context, testID string, sessionID primitive.ObjectID, minDifficulty int) (*models.Question, error)
}

// SessionService runs the adaptive protocol for user attempts: it owns
// session persistence and question selection and delegates the state
// transition itself to the pure adaptive engine.
type SessionService struct {
	Sessions    sessionStore
	Submissions submissionStore
	Questions   questionStore
	Tests       testStore
	Events      *event.Publisher

	engine *adaptive.Engine
	picker questionPicker
	locks  keyedLocks // keyed by user id + test id
}

func NewSessionService(
	sessions *repository.SessionRepository,
	submissions *repository.SubmissionRepository,
	questions *repository.QuestionRepository,
	tests *repository.TestRepository,
	events *event.Publisher,
) *SessionService {
	return &SessionService{
		Sessions:    sessions,
		Submissions: submissions,
		Questions:   questions,
		Tests:       tests,
		Events:      events,
		engine:      adaptive.NewEngine(nil),
		picker:      selection.NewPicker(questions, tests, submissions),
	}
}

type StartResult struct {
	Session  *models.UserTestSession `json:"session"`
	Question *models.PublicQuestion  `json:"question,omitempty"`
}

// Start creates a fresh session for the user and serves the opening
// question. The session is created even when the test holds no question
// at the start difficulty; the question field is simply absent then.
func (s *SessionService) Start(ctx context.Context, testID, userID string) (*StartResult, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if err != nil {
		return nil, mapNotFound(err, "Test not found")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, Unauthorized("Unauthorized")
	}

	state := s.engine.NewState()
	now := time.Now()
	session := &models.UserTestSession{
		UserID:             uid,
		TestID:             test.ID,
		Score:              state.Score,
		Completed:          false,
		CurrentDifficulty:  state.CurrentDifficulty,
		ConsecutiveCorrect: state.ConsecutiveCorrect,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	first, err := s.picker.FirstQuestion(ctx, test, s.engine.StartDifficulty())
	if err != nil {
		return nil, err
	}

	s.Events.Publish("test.started", map[string]string{
		"sessionId": session.ID.Hex(),
		"testId":    test.ID.Hex(),
		"userId":    userID,
	})

	result := &StartResult{Session: session}
	if first != nil {
		result.Question = first.Public()
	}
	return result, nil
}

type SubmitResult struct {
	ShouldEndTest bool                   `json:"shouldEndTest"`
	NextQuestion  *models.PublicQuestion `json:"nextQuestion"`
}

// SubmitAnswer records one answer and advances the session: append the
// submission, evaluate the adaptive transition, pick the next question
// (no candidate ends the session) and persist the new session state.
//
// The whole read-evaluate-write transition runs under a per-(user, test)
// lock, including the session fetch and the completed check; reading the
// session outside the lock would let concurrent submissions evaluate from
// the same stale state and lose updates.
func (s *SessionService) SubmitAnswer(ctx context.Context, userID, testID, questionID, answer string) (*SubmitResult, error) {
	question, err := s.Questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, mapNotFound(err, "Question not found")
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, Unauthorized("Unauthorized")
	}
	tid, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		return nil, NotFound("Test not found for user")
	}

	key := uid.Hex() + "/" + tid.Hex()
	lock := s.locks.acquire(key)
	defer s.locks.release(key, lock)

	session, err := s.Sessions.FindLatestByUserAndTest(ctx, uid, tid)
	if err != nil {
		return nil, mapNotFound(err, "Test not found for user")
	}
	if session.Completed {
		return nil, SessionCompleted("Test already completed")
	}

	now := time.Now()
	submission := &models.Submission{
		SessionID:  session.ID,
		QuestionID: question.ID,
		Answer:     answer,
		CreatedAt:  now,
	}
	if err := s.Submissions.Create(ctx, submission); err != nil {
		return nil, err
	}

	totalAttempts, err := s.Submissions.CountBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	state := adaptive.State{
		Score:              session.Score,
		CurrentDifficulty:  session.CurrentDifficulty,
		ConsecutiveCorrect: session.ConsecutiveCorrect,
	}
	state, decision := s.engine.Evaluate(state, question.Difficulty, answer == question.Answer, int(totalAttempts))

	shouldEnd := decision.ShouldEndTest
	var next *models.Question
	if !shouldEnd {
		next, err = s.picker.NextQuestion(ctx, testID, session.ID, decision.NextDifficulty)
		if err != nil {
			return nil, err
		}
		if next == nil {
			shouldEnd = true
		}
	}

	update := bson.M{
		"score":               state.Score,
		"completed":           shouldEnd,
		"current_difficulty":  state.CurrentDifficulty,
		"consecutive_correct": state.ConsecutiveCorrect,
		"updated_at":          now,
	}
	if err := s.Sessions.Update(ctx, session.ID, update); err != nil {
		return nil, err
	}

	s.Events.Publish("answer.submitted", map[string]interface{}{
		"sessionId":  session.ID.Hex(),
		"questionId": question.ID.Hex(),
		"correct":    decision.IsCorrect,
	})
	if shouldEnd {
		s.Events.Publish("session.completed", map[string]interface{}{
			"sessionId": session.ID.Hex(),
			"score":     state.Score,
		})
	}

	result := &SubmitResult{ShouldEndTest: shouldEnd}
	if next != nil {
		result.NextQuestion = next.Public()
	}
	return result, nil
}

// AttemptedTests reports the user's completed sessions with their test,
// the test's questions and the submitted answers, re-scored from the
// submission log.
func (s *SessionService) AttemptedTests(ctx context.Context, userID string) ([]models.AttemptedTest, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, Unauthorized("Unauthorized")
	}

	sessions, err := s.Sessions.FindCompletedByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	attempts := make([]models.AttemptedTest, 0, len(sessions))
	for _, session := range sessions {
		attempt := models.AttemptedTest{
			ID:        session.ID,
			TestID:    session.TestID,
			Score:     session.Score,
			Completed: session.Completed,
			UpdatedAt: session.UpdatedAt,
		}

		// The test may have been deleted since the attempt; keep the
		// session in the report either way.
		var answers map[primitive.ObjectID]string
		test, err := s.Tests.FindByID(ctx, session.TestID.Hex())
		switch {
		case err == nil:
			attempt.Test = test.Summary()
			questions, err := s.Questions.FindByIDs(ctx, test.Questions)
			if err != nil {
				return nil, err
			}
			answers = make(map[primitive.ObjectID]string, len(questions))
			for _, q := range questions {
				answers[q.ID] = q.Answer
				attempt.Questions = append(attempt.Questions, models.AttemptedQuestion{
					ID:         q.ID,
					Question:   q.Question,
					Difficulty: q.Difficulty,
					Answer:     q.Answer,
				})
			}
		case errors.Is(err, mongo.ErrNoDocuments):
			// test gone, report the bare session
		default:
			return nil, err
		}

		submissions, err := s.Submissions.FindBySession(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		for _, sub := range submissions {
			attempt.SubmittedAnswers = append(attempt.SubmittedAnswers, models.AttemptedAnswer{
				QuestionID: sub.QuestionID,
				Answer:     sub.Answer,
			})
			if want, ok := answers[sub.QuestionID]; ok && want == sub.Answer {
				attempt.CorrectCount++
			} else {
				attempt.WrongCount++
			}
		}

		attempts = append(attempts, attempt)
	}
	return attempts, nil
}
