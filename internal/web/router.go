package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/actuallystonmai/movie-reviews/internal/render"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/", h.ListMovies)
	r.Get("/movie/{movieID}", h.MovieDetail)
	r.Post("/movie/{movieID}/review", h.SubmitReview)
	r.Get("/health", healthCheck)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(render.Static())))

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
