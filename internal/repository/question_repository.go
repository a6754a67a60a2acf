package repository

import (
	"context"

	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var question models.Question
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

// List returns one page of questions, newest first.
func (r *QuestionRepository) List(ctx context.Context, skip, take int64) ([]models.Question, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(take)
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cur.Err()
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{})
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	res, err := r.Col.InsertOne(ctx, question)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		question.ID = oid
	}
	return nil
}

func (r *QuestionRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

// FindCandidate picks the first question from the given pool that has not
// been excluded and sits at or above minDifficulty. Sorted by _id so the
// pick is deterministic (creation order for ObjectIDs).
func (r *QuestionRepository) FindCandidate(ctx context.Context, pool, exclude []primitive.ObjectID, minDifficulty int) (*models.Question, error) {
	filter := bson.M{
		"_id":        bson.M{"$in": pool, "$nin": exclude},
		"difficulty": bson.M{"$gte": minDifficulty},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var question models.Question
	err := r.Col.FindOne(ctx, filter, opts).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindAtDifficulty picks the first question from the pool with the exact
// difficulty. Used for a session's opening question.
func (r *QuestionRepository) FindAtDifficulty(ctx context.Context, pool []primitive.ObjectID, difficulty int) (*models.Question, error) {
	filter := bson.M{
		"_id":        bson.M{"$in": pool},
		"difficulty": difficulty,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	var question models.Question
	err := r.Col.FindOne(ctx, filter, opts).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}
