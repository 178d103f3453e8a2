package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/actuallystonmai/movie-reviews/internal/handler"
)

// requestTimeout bounds every route except the two that may scrape; those
// are bounded by the service's scrape timeout instead.
var requestTimeout = 30 * time.Second

// Setup builds the catalog API router. corsOrigin is the frontend origin
// allowed to call the API from a browser.
func Setup(h *handler.Handler, corsOrigin string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(notFound)

	// Scraping routes: a cold catalog takes minutes to fill.
	r.Get("/api/movies/top-100", h.GetTopMovies)
	r.Get("/api/movies/refresh", h.RefreshMovies)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/", h.Root)
		r.Get("/health", healthCheck)
		r.Get("/api/check-db", h.CheckDB)

		r.Get("/api/movies/demo", h.GetDemoMovies)
		r.Get("/api/movies/{movieID}", h.GetMovie)
		r.Get("/api/movies/{movieID}/reviews", h.GetReviews)
		r.Post("/api/movies/{movieID}/review", h.AddReview)

		r.Get("/api/stats/genres", h.GetGenreStats)
		r.Get("/api/stats/years", h.GetYearStats)
		r.Get("/api/stats/directors", h.GetDirectorStats)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not_found","message":"Endpoint not found"}`))
}
