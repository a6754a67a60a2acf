package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"exam-service/internal/adaptive"
	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory stores backing SessionService in tests. Each guards its own
// data so the tests can hammer the service concurrently.

type memSessions struct {
	mu      sync.Mutex
	session *models.UserTestSession
}

func (m *memSessions) Create(_ context.Context, s *models.UserTestSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = primitive.NewObjectID()
	cp := *s
	m.session = &cp
	return nil
}

func (m *memSessions) FindLatestByUserAndTest(_ context.Context, userID, testID primitive.ObjectID) (*models.UserTestSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.UserID != userID || m.session.TestID != testID {
		return nil, mongo.ErrNoDocuments
	}
	cp := *m.session
	return &cp, nil
}

func (m *memSessions) FindCompletedByUser(_ context.Context, userID primitive.ObjectID) ([]models.UserTestSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.UserID != userID || !m.session.Completed {
		return nil, nil
	}
	return []models.UserTestSession{*m.session}, nil
}

func (m *memSessions) Update(_ context.Context, id primitive.ObjectID, update bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.ID != id {
		return mongo.ErrNoDocuments
	}
	if v, ok := update["score"]; ok {
		m.session.Score = v.(int)
	}
	if v, ok := update["completed"]; ok {
		m.session.Completed = v.(bool)
	}
	if v, ok := update["current_difficulty"]; ok {
		m.session.CurrentDifficulty = v.(int)
	}
	if v, ok := update["consecutive_correct"]; ok {
		m.session.ConsecutiveCorrect = v.(int)
	}
	return nil
}

func (m *memSessions) get() models.UserTestSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.session
}

type memSubmissions struct {
	mu   sync.Mutex
	subs []models.Submission
}

func (m *memSubmissions) Create(_ context.Context, s *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = primitive.NewObjectID()
	m.subs = append(m.subs, *s)
	return nil
}

func (m *memSubmissions) CountBySession(_ context.Context, sessionID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.subs {
		if s.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (m *memSubmissions) FindBySession(_ context.Context, sessionID primitive.ObjectID) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Submission
	for _, s := range m.subs {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memQuestions struct {
	byID map[string]*models.Question
}

func (m *memQuestions) FindByID(_ context.Context, id string) (*models.Question, error) {
	q, ok := m.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return q, nil
}

func (m *memQuestions) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	var out []models.Question
	for _, id := range ids {
		if q, ok := m.byID[id.Hex()]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

type memTests struct {
	test *models.Test
}

func (m *memTests) FindByID(_ context.Context, id string) (*models.Test, error) {
	if m.test == nil || m.test.ID.Hex() != id {
		return nil, mongo.ErrNoDocuments
	}
	return m.test, nil
}

// stubPicker serves a fixed question, or nothing when drained.
type stubPicker struct {
	mu      sync.Mutex
	next    *models.Question
	drained bool
}

func (p *stubPicker) FirstQuestion(_ context.Context, _ *models.Test, _ int) (*models.Question, error) {
	return p.next, nil
}

func (p *stubPicker) NextQuestion(_ context.Context, _ string, _ primitive.ObjectID, _ int) (*models.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drained {
		return nil, nil
	}
	return p.next, nil
}

func newSessionFixture(question *models.Question, picker questionPicker) (*SessionService, *memSessions, *memSubmissions, primitive.ObjectID, primitive.ObjectID) {
	testID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	sessions := &memSessions{}
	submissions := &memSubmissions{}
	svc := &SessionService{
		Sessions:    sessions,
		Submissions: submissions,
		Questions:   &memQuestions{byID: map[string]*models.Question{question.ID.Hex(): question}},
		Tests:       &memTests{test: &models.Test{ID: testID, Title: "Sample", Questions: []primitive.ObjectID{question.ID}}},
		engine:      adaptive.NewEngine(nil),
		picker:      picker,
	}
	sessions.Create(context.Background(), &models.UserTestSession{
		UserID:            userID,
		TestID:            testID,
		CurrentDifficulty: 5,
	})
	return svc, sessions, submissions, userID, testID
}

func TestSubmitAnswerEndsWhenNoCandidate(t *testing.T) {
	question := &models.Question{
		ID:         primitive.NewObjectID(),
		Question:   "2+2?",
		Options:    []string{"3", "4"},
		Answer:     "4",
		Difficulty: 5,
	}
	svc, sessions, _, userID, testID := newSessionFixture(question, &stubPicker{drained: true})

	result, err := svc.SubmitAnswer(context.Background(), userID.Hex(), testID.Hex(), question.ID.Hex(), "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ShouldEndTest {
		t.Error("expected session to end when no candidate question exists")
	}
	if result.NextQuestion != nil {
		t.Errorf("unexpected next question: %+v", result.NextQuestion)
	}
	if got := sessions.get(); !got.Completed || got.Score != 1 {
		t.Errorf("session after end: completed=%v score=%d, want completed=true score=1", got.Completed, got.Score)
	}
}

func TestSubmitAnswerRejectsCompletedSession(t *testing.T) {
	question := &models.Question{
		ID:         primitive.NewObjectID(),
		Question:   "2+2?",
		Options:    []string{"3", "4"},
		Answer:     "4",
		Difficulty: 5,
	}
	svc, sessions, submissions, userID, testID := newSessionFixture(question, &stubPicker{drained: true})
	sessions.session.Completed = true

	_, err := svc.SubmitAnswer(context.Background(), userID.Hex(), testID.Hex(), question.ID.Hex(), "4")
	if !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("error = %v, want ErrSessionCompleted", err)
	}
	if n, _ := submissions.CountBySession(context.Background(), sessions.session.ID); n != 0 {
		t.Errorf("completed session accepted %d submissions", n)
	}
}

// Concurrent submissions for one session must not lose updates: each
// transition reads the state the previous one wrote, so the final score
// equals the number of correct answers processed.
func TestSubmitAnswerConcurrentNoLostUpdates(t *testing.T) {
	question := &models.Question{
		ID:         primitive.NewObjectID(),
		Question:   "2+2?",
		Options:    []string{"3", "4"},
		Answer:     "4",
		Difficulty: 5,
	}
	next := &models.Question{
		ID:         primitive.NewObjectID(),
		Question:   "3+3?",
		Options:    []string{"5", "6"},
		Answer:     "6",
		Difficulty: 6,
	}
	svc, sessions, submissions, userID, testID := newSessionFixture(question, &stubPicker{next: next})

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitAnswer(context.Background(), userID.Hex(), testID.Hex(), question.ID.Hex(), "4")
			if err != nil {
				t.Errorf("submit failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got := sessions.get()
	if got.Score != workers {
		t.Errorf("score = %d after %d correct answers, want %d (lost update)", got.Score, workers, workers)
	}
	if n, _ := submissions.CountBySession(context.Background(), got.ID); n != workers {
		t.Errorf("submission count = %d, want %d", n, workers)
	}
	if svc.locks.len() != 0 {
		t.Errorf("lock map holds %d entries after all submissions returned", svc.locks.len())
	}
}
