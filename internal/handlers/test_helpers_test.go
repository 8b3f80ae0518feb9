package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"achieveit-backend/internal/email"
	"achieveit-backend/internal/gamification"
	"achieveit-backend/internal/middleware"
	"achieveit-backend/internal/models"
	"achieveit-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testJWTSecret = "achieveit_test_jwt_secret_key_123"

// --- in-memory store fakes ---

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateIdentity
		}
	}
	user.ID = bson.NewObjectID()
	clone := *user
	s.users[user.ID.Hex()] = &clone
	return nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, userEmail string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == userEmail {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id.Hex()]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) UpdateAvatar(ctx context.Context, id bson.ObjectID, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id.Hex()]
	if !ok {
		return repository.ErrNotFound
	}
	u.Avatar = avatar
	return nil
}

func (s *fakeUserStore) SaveProgress(ctx context.Context, id bson.ObjectID, state gamification.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id.Hex()]
	if !ok {
		return repository.ErrNotFound
	}
	u.XP = state.XP
	u.Level = state.Level
	u.Badges = state.Badges
	u.Streak = state.Streak
	u.LastCompletionDate = state.LastCompletionDate
	return nil
}

type fakeTodoStore struct {
	mu    sync.Mutex
	todos []*models.Todo
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{}
}

func (s *fakeTodoStore) Create(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo.ID = bson.NewObjectID()
	clone := *todo
	s.todos = append(s.todos, &clone)
	return nil
}

func (s *fakeTodoStore) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Todo{}
	for _, t := range s.todos {
		if t.UserID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *fakeTodoStore) FindOwned(ctx context.Context, id, ownerID bson.ObjectID) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.todos {
		if t.ID == id && t.UserID == ownerID {
			clone := *t
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeTodoStore) SetCompleted(ctx context.Context, id, ownerID bson.ObjectID, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.todos {
		if t.ID == id && t.UserID == ownerID {
			t.Completed = completed
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeTodoStore) DeleteOne(ctx context.Context, id, ownerID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.todos {
		if t.ID == id && t.UserID == ownerID {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeTodoStore) DeleteAllByOwner(ctx context.Context, ownerID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.todos[:0]
	for _, t := range s.todos {
		if t.UserID != ownerID {
			kept = append(kept, t)
		}
	}
	s.todos = kept
	return nil
}

// --- request helpers ---

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authedRequest(t *testing.T, method, target string, body any, userID bson.ObjectID) *http.Request {
	t.Helper()
	req := jsonRequest(t, method, target, body)
	return req.WithContext(middleware.WithUserID(req.Context(), userID.Hex()))
}

func decodeBody[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return out
}

// newTestRouter mirrors the production route table without the JWT
// middleware; tests inject the caller identity directly on the request.
func newTestRouter(authHandler *AuthHandler, todoHandler *TodoHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/auth/signup", authHandler.Signup)
	r.Post("/api/auth/login", authHandler.Login)
	r.Put("/api/auth/users/avatar", authHandler.UpdateAvatar)
	r.Get("/api/todos", todoHandler.List)
	r.Post("/api/todos", todoHandler.Create)
	r.Get("/api/todos/user/xp", todoHandler.GetXP)
	r.Get("/api/todos/user/badges", todoHandler.GetBadges)
	r.Delete("/api/todos/all", todoHandler.DeleteAll)
	r.Put("/api/todos/{id}", todoHandler.Toggle)
	r.Delete("/api/todos/{id}", todoHandler.Delete)
	return r
}

// newTestHandlers wires handlers over fresh in-memory stores.
func newTestHandlers() (*fakeUserStore, *fakeTodoStore, *chi.Mux) {
	users := newFakeUserStore()
	todos := newFakeTodoStore()
	authHandler := NewAuthHandler(users, email.NewMockNotifier(), testJWTSecret)
	todoHandler := NewTodoHandler(todos, users)
	return users, todos, newTestRouter(authHandler, todoHandler)
}
