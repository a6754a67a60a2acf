package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmissionRepository is append-only: submissions are never updated or
// deleted.
type SubmissionRepository struct {
	Col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{Col: db.Collection("submissions")}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	res, err := r.Col.InsertOne(ctx, submission)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		submission.ID = oid
	}
	return nil
}

func (r *SubmissionRepository) CountBySession(ctx context.Context, sessionID primitive.ObjectID) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"session_id": sessionID})
}

// QuestionIDsBySession lists the questions already asked in a session,
// used to exclude them from the next pick.
func (r *SubmissionRepository) QuestionIDsBySession(ctx context.Context, sessionID primitive.ObjectID) ([]primitive.ObjectID, error) {
	values, err := r.Col.Distinct(ctx, "question_id", bson.M{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if oid, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, oid)
		}
	}
	return ids, nil
}

func (r *SubmissionRepository) FindBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Submission, error) {
	cur, err := r.Col.Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var submissions []models.Submission
	for cur.Next(ctx) {
		var s models.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, cur.Err()
}
