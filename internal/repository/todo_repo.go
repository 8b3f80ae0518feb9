package repository

import (
	"context"
	"time"

	"achieveit-backend/internal/database"
	"achieveit-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TodoRepo persists todos. Every query is filtered by the owning user, so no
// operation can reach another user's todos.
type TodoRepo struct {
	collection *mongo.Collection
}

func NewTodoRepo() *TodoRepo {
	return &TodoRepo{
		collection: database.GetCollection("todos"),
	}
}

func (r *TodoRepo) Create(ctx context.Context, todo *models.Todo) error {
	todo.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, todo)
	if err != nil {
		return err
	}
	todo.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// ListByOwner returns the owner's todos in insertion order.
func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]models.Todo, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return nil, err
	}

	todos := []models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// FindOwned returns the todo only if it exists AND belongs to ownerID;
// a missing todo and someone else's todo both fail with ErrNotFound.
func (r *TodoRepo) FindOwned(ctx context.Context, id, ownerID bson.ObjectID) (*models.Todo, error) {
	var todo models.Todo
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": ownerID}).Decode(&todo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepo) SetCompleted(ctx context.Context, id, ownerID bson.ObjectID, completed bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": ownerID}, bson.M{
		"$set": bson.M{"completed": completed},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TodoRepo) DeleteOne(ctx context.Context, id, ownerID bson.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TodoRepo) DeleteAllByOwner(ctx context.Context, ownerID bson.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": ownerID})
	return err
}

// EnsureIndexes creates necessary indexes for the todos collection
func (r *TodoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
