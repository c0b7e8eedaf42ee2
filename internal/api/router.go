package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/apilab/users-api/internal/apierr"
	"github.com/apilab/users-api/internal/api/handlers"
	"github.com/apilab/users-api/internal/api/respond"
	"github.com/apilab/users-api/internal/auth"
	"github.com/apilab/users-api/internal/store"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(users store.Store, tokens *auth.Service, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, apierr.NotFound())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, apierr.MethodNotAllowed(r.Method))
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(users)
	authHandler := handlers.NewAuthHandler(users, tokens)
	systemHandler := handlers.NewSystemHandler(users)

	r.Get("/health", systemHandler.Health)
	r.Get("/error", systemHandler.Error)
	r.Post("/reset", systemHandler.Reset)
	r.Post("/login", authHandler.Login)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAll)
		r.With(requireAuth(tokens)).Post("/", userHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", userHandler.Get)
			r.With(requireAuth(tokens)).Put("/", userHandler.Update)
			r.With(requireAuth(tokens), requireAdmin).Delete("/", userHandler.Delete)
		})
	})

	return r
}
