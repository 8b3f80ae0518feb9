package handlers

import (
	"context"

	"achieveit-backend/internal/gamification"
	"achieveit-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserStore is the credential-store surface the handlers need. Satisfied by
// repository.UserRepo; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	UpdateAvatar(ctx context.Context, id bson.ObjectID, avatar string) error
	SaveProgress(ctx context.Context, id bson.ObjectID, state gamification.State) error
}

// TodoStore is the todo-store surface the handlers need. Satisfied by
// repository.TodoRepo.
type TodoStore interface {
	Create(ctx context.Context, todo *models.Todo) error
	ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]models.Todo, error)
	FindOwned(ctx context.Context, id, ownerID bson.ObjectID) (*models.Todo, error)
	SetCompleted(ctx context.Context, id, ownerID bson.ObjectID, completed bool) error
	DeleteOne(ctx context.Context, id, ownerID bson.ObjectID) error
	DeleteAllByOwner(ctx context.Context, ownerID bson.ObjectID) error
}
