package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"achieveit-backend/internal/gamification"
	"achieveit-backend/internal/models"
	"achieveit-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const defaultCategory = "General"

type TodoHandler struct {
	todoRepo TodoStore
	userRepo UserStore
	now      func() time.Time
}

func NewTodoHandler(todoRepo TodoStore, userRepo UserStore) *TodoHandler {
	return &TodoHandler{
		todoRepo: todoRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

type CreateTodoRequest struct {
	Text     string     `json:"text"`
	Category string     `json:"category"`
	DueDate  *time.Time `json:"dueDate"`
}

// --- GET /api/todos ---

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	todos, err := h.todoRepo.ListByOwner(r.Context(), ownerID)
	if err != nil {
		log.Printf("Error listing todos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// --- POST /api/todos ---

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "todo text is required"})
		return
	}

	category := req.Category
	if category == "" {
		category = defaultCategory
	}

	dueDate := h.now()
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	todo := &models.Todo{
		Text:     req.Text,
		Category: category,
		DueDate:  dueDate,
		UserID:   ownerID,
	}
	if err := h.todoRepo.Create(r.Context(), todo); err != nil {
		log.Printf("Error creating todo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create todo"})
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// --- PUT /api/todos/{id} ---

// Toggle flips the completed flag. The transition to completed is the
// completion event: the gamification engine runs and the derived user state
// is persisted before the response is sent. Toggling back to pending has no
// gamification side effect, and re-completing awards XP again.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	todoID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}

	todo, err := h.todoRepo.FindOwned(r.Context(), todoID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
			return
		}
		log.Printf("Error finding todo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	todo.Completed = !todo.Completed
	if err := h.todoRepo.SetCompleted(r.Context(), todoID, ownerID, todo.Completed); err != nil {
		log.Printf("Error toggling todo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if todo.Completed {
		if err := h.awardCompletion(r, ownerID); err != nil {
			log.Printf("Error applying gamification: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) awardCompletion(r *http.Request, ownerID bson.ObjectID) error {
	user, err := h.userRepo.FindByID(r.Context(), ownerID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user record missing for authenticated caller")
	}

	state := gamification.Apply(gamification.State{
		XP:                 user.XP,
		Level:              user.Level,
		Badges:             user.Badges,
		Streak:             user.Streak,
		LastCompletionDate: user.LastCompletionDate,
	}, h.now())

	return h.userRepo.SaveProgress(r.Context(), ownerID, state)
}

// --- DELETE /api/todos/{id} ---

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	todoID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
		return
	}

	if err := h.todoRepo.DeleteOne(r.Context(), todoID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "todo not found"})
			return
		}
		log.Printf("Error deleting todo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "todo deleted"})
}

// --- DELETE /api/todos/all ---

func (h *TodoHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.todoRepo.DeleteAllByOwner(r.Context(), ownerID); err != nil {
		log.Printf("Error clearing todos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "all todos cleared"})
}

// --- GET /api/todos/user/xp ---

func (h *TodoHandler) GetXP(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"xp":     user.XP,
		"level":  user.Level,
		"streak": user.Streak,
	})
}

// --- GET /api/todos/user/badges ---

func (h *TodoHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	badges := user.Badges
	if badges == nil {
		badges = []string{}
	}
	writeJSON(w, http.StatusOK, badges)
}

func (h *TodoHandler) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	ownerID, ok := requireUserID(w, r)
	if !ok {
		return nil, false
	}

	user, err := h.userRepo.FindByID(r.Context(), ownerID)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return nil, false
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return nil, false
	}
	return user, true
}
