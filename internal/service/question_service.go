package service

import (
	"context"
	"time"

	"exam-service/internal/event"
	"exam-service/internal/models"
	"exam-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

const defaultPageSize = 10

type QuestionService struct {
	Repo   *repository.QuestionRepository
	Events *event.Publisher
}

func NewQuestionService(repo *repository.QuestionRepository, events *event.Publisher) *QuestionService {
	return &QuestionService{Repo: repo, Events: events}
}

func (s *QuestionService) Create(ctx context.Context, question *models.Question) error {
	if err := question.Validate(); err != nil {
		return Validation(err.Error())
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now
	if err := s.Repo.Create(ctx, question); err != nil {
		return err
	}
	s.Events.Publish("question.created", map[string]string{"questionId": question.ID.Hex()})
	return nil
}

type QuestionPage struct {
	Questions  []models.Question `json:"questions"`
	NextCursor *int64            `json:"nextCursor,omitempty"`
}

func (s *QuestionService) List(ctx context.Context, skip, take int64) (*QuestionPage, error) {
	if take <= 0 {
		take = defaultPageSize
	}
	if skip < 0 {
		skip = 0
	}
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.Repo.List(ctx, skip, take)
	if err != nil {
		return nil, err
	}
	page := &QuestionPage{Questions: questions}
	if total > skip+take {
		next := skip + take
		page.NextCursor = &next
	}
	return page, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*models.Question, error) {
	question, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Question not found")
	}
	return question, nil
}

// Update is partial: zero-valued fields in the input keep the stored
// values. The merged document is re-validated before persisting.
func (s *QuestionService) Update(ctx context.Context, id string, in *models.Question) (*models.Question, error) {
	question, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Question not found")
	}

	if in.Question != "" {
		question.Question = in.Question
	}
	if in.Difficulty != 0 {
		question.Difficulty = in.Difficulty
	}
	if len(in.Options) != 0 {
		question.Options = in.Options
	}
	if in.Answer != "" {
		question.Answer = in.Answer
	}
	if err := question.Validate(); err != nil {
		return nil, Validation(err.Error())
	}
	question.UpdatedAt = time.Now()

	update := bson.M{
		"question":   question.Question,
		"difficulty": question.Difficulty,
		"options":    question.Options,
		"answer":     question.Answer,
		"updated_at": question.UpdatedAt,
	}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return mapNotFound(err, "Question not found")
	}
	return s.Repo.Delete(ctx, id)
}
