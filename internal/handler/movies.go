package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

// GET /api/movies/top-100
func (h *Handler) GetTopMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.TopMovies(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			writeError(w, http.StatusInternalServerError, "catalog_unavailable", "Failed to update movie cache")
			return
		}
		writeServiceError(w, err, "Failed to fetch movies")
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// GET /api/movies/demo
func (h *Handler) GetDemoMovies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.DemoMovies())
}

// GET /api/movies/refresh
func (h *Handler) RefreshMovies(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to update movie cache")
		return
	}
	writeJSON(w, http.StatusOK, RefreshResponse{Message: "Movie cache refreshed successfully", Count: n})
}

// GET /api/movies/{movieID}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(w, r)
	if !ok {
		return
	}

	movie, err := h.service.Movie(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "movie_not_found", "Movie not found")
			return
		}
		writeServiceError(w, err, "Error retrieving movie details")
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func writeServiceError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "Request timed out, please try again")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", message)
}
