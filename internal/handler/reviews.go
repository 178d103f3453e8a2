package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

const maxReviewBody = 64 << 10

// GET /api/movies/{movieID}/reviews
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.Reviews(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Error retrieving reviews")
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// POST /api/movies/{movieID}/review
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(w, r)
	if !ok {
		return
	}

	var req domain.ReviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReviewBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Review body must be JSON with rating and review_msg")
		return
	}
	if req.Rating < 0 || req.Rating > domain.MaxRating {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Rating must be between 0 and 10")
		return
	}

	review, err := h.service.AddReview(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "movie_not_found", "Movie not found")
			return
		}
		writeServiceError(w, err, "Error saving review")
		return
	}

	writeJSON(w, http.StatusCreated, ReviewCreatedResponse{
		Message: "Review added successfully",
		Review:  review,
	})
}
