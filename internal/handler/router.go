package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cesmanager/cesmanager-go/internal/middleware"
)

// RouterConfig holds the settings the HTTP surface needs beyond its handlers.
type RouterConfig struct {
	JWTSecret     string
	AuthRateLimit float64
	AuthRateBurst int
}

// NewRouter builds the API router.
func NewRouter(cfg RouterConfig, auth *AuthHandler, sessions *SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
			r.Post("/register", auth.HandleRegister)
			r.Post("/login", auth.HandleLogin)
		})

		r.With(middleware.JWTAuth(cfg.JWTSecret)).Get("/me", auth.HandleMe)
	})

	r.Route("/session", func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/getall", sessions.HandleGetAll)
		r.Get("/{id}", sessions.HandleGet)
		r.Post("/", sessions.HandleAdd)
		r.Put("/", sessions.HandleUpdate)
		r.Delete("/{id}", sessions.HandleDelete)
	})

	return r
}
