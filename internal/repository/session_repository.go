package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("user_test_sessions")}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.UserTestSession) error {
	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid
	}
	return nil
}

// FindLatestByUserAndTest returns the newest session for the pair, whether
// completed or not. Callers decide what a completed session means.
func (r *SessionRepository) FindLatestByUserAndTest(ctx context.Context, userID, testID primitive.ObjectID) (*models.UserTestSession, error) {
	filter := bson.M{"user_id": userID, "test_id": testID}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var session models.UserTestSession
	err := r.Col.FindOne(ctx, filter, opts).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindCompletedByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserTestSession, error) {
	filter := bson.M{"user_id": userID, "completed": true}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var sessions []models.UserTestSession
	for cur.Next(ctx) {
		var s models.UserTestSession
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, cur.Err()
}

func (r *SessionRepository) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}
