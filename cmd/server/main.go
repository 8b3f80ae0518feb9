package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"achieveit-backend/internal/database"
	"achieveit-backend/internal/email"
	"achieveit-backend/internal/handlers"
	customMiddleware "achieveit-backend/internal/middleware"
	"achieveit-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	// Required env vars
	mongoURI := getEnv("MONGODB_URI", "")
	dbName := getEnv("DB_NAME", "achieveit")
	jwtSecret := getEnv("JWT_SECRET", "")
	port := getEnv("PORT", "8080")

	if mongoURI == "" {
		log.Fatal("❌ MONGODB_URI is required")
	}
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	// Connect to MongoDB
	if err := database.Connect(mongoURI, dbName); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepo()
	todoRepo := repository.NewTodoRepo()

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create user indexes: %v", err)
	}
	if err := todoRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create todo indexes: %v", err)
	}

	// Welcome emails go through Resend when configured, otherwise stay local
	var notifier email.Notifier
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		notifier = email.NewResendNotifier(apiKey, getEnv("FROM_EMAIL", "hello@achieveit.app"))
	} else {
		notifier = email.NewMockNotifier()
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, notifier, jwtSecret)
	todoHandler := handlers.NewTodoHandler(todoRepo, userRepo)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"achieveit-backend"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		// Protected routes (JWT required)
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.JWTAuth(jwtSecret))
			r.Put("/users/avatar", authHandler.UpdateAvatar)
		})
	})

	r.Route("/api/todos", func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(jwtSecret))

		r.Get("/", todoHandler.List)
		r.Post("/", todoHandler.Create)
		r.Get("/user/xp", todoHandler.GetXP)
		r.Get("/user/badges", todoHandler.GetBadges)
		r.Delete("/all", todoHandler.DeleteAll)
		r.Put("/{id}", todoHandler.Toggle)
		r.Delete("/{id}", todoHandler.Delete)
	})

	// Start server
	log.Printf("🚀 AchieveIt backend starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
