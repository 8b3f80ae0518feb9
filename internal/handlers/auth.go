package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"achieveit-backend/internal/auth"
	"achieveit-backend/internal/email"
	"achieveit-backend/internal/middleware"
	"achieveit-backend/internal/models"
	"achieveit-backend/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

// Session tokens expire after one day; expiry is the only invalidation.
const sessionTokenTTL = 24 * time.Hour

const defaultAvatarURL = "https://api.dicebear.com/9.x/adventurer/svg?seed=%s"

type AuthHandler struct {
	userRepo  UserStore
	notifier  email.Notifier
	jwtSecret string
}

func NewAuthHandler(userRepo UserStore, notifier email.Notifier, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepo:  userRepo,
		notifier:  notifier,
		jwtSecret: jwtSecret,
	}
}

// --- Request / Response types ---

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the client-facing slice of a user record. The password
// hash never leaves the server.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
	Avatar   string `json:"avatar"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
		XP:       user.XP,
		Level:    user.Level,
		Avatar:   user.Avatar,
	}
}

// --- POST /api/auth/signup ---

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "all fields are required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	avatar := req.Avatar
	if avatar == "" {
		// Every new account gets its own generated avatar.
		avatar = fmt.Sprintf(defaultAvatarURL, uuid.New().String())
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Level:    1,
		Badges:   []string{},
		Avatar:   avatar,
	}

	if err := h.userRepo.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user already exists"})
			return
		}
		log.Printf("Error creating user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "signup failed"})
		return
	}

	token, err := auth.IssueToken(user.ID.Hex(), []byte(h.jwtSecret), sessionTokenTTL)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	// Welcome email is best-effort and must not block the response.
	go func() {
		if err := h.notifier.SendWelcome(context.Background(), user.Email, user.Username); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}()

	writeJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// --- POST /api/auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.IssueToken(user.ID.Hex(), []byte(h.jwtSecret), sessionTokenTTL)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "login successful",
		"token":   token,
		"user":    toUserResponse(user),
	})
}

// --- PUT /api/auth/users/avatar ---

func (h *AuthHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.userRepo.UpdateAvatar(r.Context(), userID, req.Avatar); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		log.Printf("Error updating avatar: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update avatar"})
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil || user == nil {
		log.Printf("Error reloading user after avatar update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "avatar updated successfully",
		"user":    toUserResponse(user),
	})
}

// --- Helpers ---

// requireUserID resolves the authenticated caller's id from the request
// context, writing the error response itself when the request is not
// properly authenticated.
func requireUserID(w http.ResponseWriter, r *http.Request) (bson.ObjectID, bool) {
	userIDHex := middleware.GetUserID(r.Context())
	if userIDHex == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return bson.ObjectID{}, false
	}

	userID, err := bson.ObjectIDFromHex(userIDHex)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid user ID"})
		return bson.ObjectID{}, false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
