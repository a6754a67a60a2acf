package service

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"exam-service/internal/event"
	"exam-service/internal/models"
	"exam-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TestService struct {
	Repo   *repository.TestRepository
	Events *event.Publisher
}

func NewTestService(repo *repository.TestRepository, events *event.Publisher) *TestService {
	return &TestService{Repo: repo, Events: events}
}

// Create builds a test from a question id list. The share slug is derived
// from the title once, at creation, and never changes afterwards.
func (s *TestService) Create(ctx context.Context, title, description string, questionIDs []string) (*models.Test, error) {
	questions, err := parseObjectIDs(questionIDs)
	if err != nil {
		return nil, Validation("questions must be valid question ids")
	}

	test := &models.Test{
		Title:       title,
		Description: description,
		Questions:   questions,
		URL:         base64.StdEncoding.EncodeToString([]byte(title)),
	}
	if err := test.Validate(); err != nil {
		return nil, Validation(err.Error())
	}

	// The slug is looked up by takers; it has to be unique.
	_, err = s.Repo.FindByURL(ctx, test.URL)
	if err == nil {
		return nil, Conflict("A test with this title already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now()
	test.CreatedAt = now
	test.UpdatedAt = now
	if err := s.Repo.Create(ctx, test); err != nil {
		return nil, err
	}
	s.Events.Publish("test.created", map[string]string{"testId": test.ID.Hex()})
	return test, nil
}

type TestPage struct {
	Tests      []models.Test `json:"tests"`
	NextCursor *int64        `json:"nextCursor,omitempty"`
}

func (s *TestService) List(ctx context.Context, skip, take int64) (*TestPage, error) {
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
	tests, err := s.Repo.List(ctx, skip, take)
	if err != nil {
		return nil, err
	}
	page := &TestPage{Tests: tests}
	if total > skip+take {
		next := skip + take
		page.NextCursor = &next
	}
	return page, nil
}

func (s *TestService) Get(ctx context.Context, id string) (*models.Test, error) {
	test, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Test not found")
	}
	return test, nil
}

// GetByURL serves the share link: the summary only, so the question set
// stays hidden from takers.
func (s *TestService) GetByURL(ctx context.Context, url string) (*models.TestSummary, error) {
	test, err := s.Repo.FindByURL(ctx, url)
	if err != nil {
		return nil, mapNotFound(err, "Test not found")
	}
	return test.Summary(), nil
}

// Update is partial like question update; the url slug is immutable.
func (s *TestService) Update(ctx context.Context, id, title, description string, questionIDs []string) (*models.Test, error) {
	test, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Test not found")
	}

	if title != "" {
		test.Title = title
	}
	if description != "" {
		test.Description = description
	}
	if len(questionIDs) != 0 {
		questions, err := parseObjectIDs(questionIDs)
		if err != nil {
			return nil, Validation("questions must be valid question ids")
		}
		test.Questions = questions
	}
	if err := test.Validate(); err != nil {
		return nil, Validation(err.Error())
	}
	test.UpdatedAt = time.Now()

	update := bson.M{
		"title":       test.Title,
		"description": test.Description,
		"questions":   test.Questions,
		"updated_at":  test.UpdatedAt,
	}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return test, nil
}

// Delete removes the test definition. Sessions that referenced it are
// kept; the attempted report tolerates the dangling reference.
func (s *TestService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return mapNotFound(err, "Test not found")
	}
	return s.Repo.Delete(ctx, id)
}

func parseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	parsed := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, oid)
	}
	return parsed, nil
}
