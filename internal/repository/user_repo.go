package repository

import (
	"context"
	"time"

	"achieveit-backend/internal/database"
	"achieveit-backend/internal/gamification"
	"achieveit-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		collection: database.GetCollection("users"),
	}
}

// Create inserts a new user. Username and email must each be globally
// unique; a clash fails with ErrDuplicateIdentity before anything is written
// (the unique indexes back the pre-check up under concurrency).
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{
			{"username": user.Username},
			{"email": user.Email},
		},
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateIdentity
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateIdentity
		}
		return err
	}
	user.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, id bson.ObjectID, avatar string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"avatar":     avatar,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveProgress persists the gamification fields derived by the engine in a
// single update. The surrounding read-compute-write is last-write-wins
// across concurrent requests for the same user, matching the product's
// accepted behavior.
func (r *UserRepo) SaveProgress(ctx context.Context, id bson.ObjectID, state gamification.State) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"xp":                   state.XP,
			"level":                state.Level,
			"badges":               state.Badges,
			"streak":               state.Streak,
			"last_completion_date": state.LastCompletionDate,
			"updated_at":           time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes for the users collection
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
