package handler

import "net/http"

// GET /api/stats/genres
func (h *Handler) GetGenreStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GenreStats(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error computing genre statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/stats/years
func (h *Handler) GetYearStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.YearStats(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error computing year statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/stats/directors
func (h *Handler) GetDirectorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DirectorStats(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error computing director statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/check-db
func (h *Handler) CheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CheckDB(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "database_error", "Database error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DBStatusResponse{Status: "Database connected", Result: 1})
}

// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Movie Reviews API is running"})
}
