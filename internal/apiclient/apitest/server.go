// Package apitest provides an in-memory movie REST API for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

// Server is a fake movie API. Fields may be changed between requests; set a
// *Status field to a non-zero code to make that endpoint fail.
type Server struct {
	*httptest.Server

	mu sync.Mutex

	Top     []domain.Movie
	Demo    []domain.Movie
	Movies  map[string]domain.Movie
	Reviews map[string][]domain.Review

	TopStatus     int
	DemoStatus    int
	MovieStatus   int
	ReviewsStatus int
	SubmitStatus  int

	// Hold, when set, runs at the start of every request with the endpoint
	// name, outside the server lock. Tests use it to stall or synchronize
	// requests.
	Hold func(endpoint string)

	Submitted []domain.ReviewRequest
	calls     map[string]int
}

func NewServer() *Server {
	s := &Server{
		Movies:  map[string]domain.Movie{},
		Reviews: map[string][]domain.Review{},
		calls:   map[string]int{},
	}

	r := chi.NewRouter()
	r.Get("/api/movies/top-100", s.list("top", func() ([]domain.Movie, int) { return s.Top, s.TopStatus }))
	r.Get("/api/movies/demo", s.list("demo", func() ([]domain.Movie, int) { return s.Demo, s.DemoStatus }))
	r.Get("/api/movies/{movieID}", s.movie)
	r.Get("/api/movies/{movieID}/reviews", s.reviews)
	r.Post("/api/movies/{movieID}/review", s.submit)

	s.Server = httptest.NewServer(r)
	return s
}

// Calls reports how many requests reached an endpoint: "top", "demo",
// "movie", "reviews" or "submit".
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

func (s *Server) count(endpoint string) {
	s.mu.Lock()
	s.calls[endpoint]++
	hold := s.Hold
	s.mu.Unlock()
	if hold != nil {
		hold(endpoint)
	}
}

func (s *Server) list(name string, get func() ([]domain.Movie, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.count(name)
		s.mu.Lock()
		movies, status := get()
		s.mu.Unlock()
		if status != 0 {
			http.Error(w, "failed", status)
			return
		}
		writeJSON(w, http.StatusOK, movies)
	}
}

func (s *Server) movie(w http.ResponseWriter, r *http.Request) {
	s.count("movie")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MovieStatus != 0 {
		http.Error(w, "failed", s.MovieStatus)
		return
	}
	m, ok := s.Movies[chi.URLParam(r, "movieID")]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) reviews(w http.ResponseWriter, r *http.Request) {
	s.count("reviews")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReviewsStatus != 0 {
		http.Error(w, "failed", s.ReviewsStatus)
		return
	}
	reviews := s.Reviews[chi.URLParam(r, "movieID")]
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	s.count("submit")
	var req domain.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Submitted = append(s.Submitted, req)
	if s.SubmitStatus != 0 {
		http.Error(w, "failed", s.SubmitStatus)
		return
	}

	id := chi.URLParam(r, "movieID")
	review := domain.Review{
		ID:        int64(len(s.Submitted)),
		ReviewMsg: req.ReviewMsg,
		Rating:    req.Rating,
	}
	s.Reviews[id] = append(s.Reviews[id], review)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Review added successfully", "review": review})
}

// Movie builds a fully populated movie for tests.
func Movie(id int64, title, director string) domain.Movie {
	return domain.Movie{
		ID:          id,
		Title:       title,
		Year:        1990 + int(id),
		Rating:      8.0 + float64(id%10)/10,
		Director:    director,
		Genre:       []string{"Drama"},
		PosterURL:   "https://img.example.com/" + strconv.FormatInt(id, 10) + ".jpg",
		Description: title + " description.",
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
