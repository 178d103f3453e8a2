// Package servicetest provides an in-memory service.Store for tests.
package servicetest

import (
	"context"
	"sort"
	"sync"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

// Store keeps movies and reviews in memory. Scraped movies without an id get
// the next free one; a known IMDb id updates its existing row. The exported
// fields may be set before requests are made.
type Store struct {
	mu       sync.Mutex
	movies   map[int64]domain.Movie
	byIMDb   map[string]int64
	reviews  map[int64][]domain.Review
	lastID   int64
	reviewID int64

	PingErr   error
	StatsErr  error
	Genres    []domain.GenreStat
	Years     []domain.YearStat
	Directors []domain.DirectorStat
}

func NewStore(movies ...domain.Movie) *Store {
	s := &Store{
		movies:  map[int64]domain.Movie{},
		byIMDb:  map[string]int64{},
		reviews: map[int64][]domain.Review{},
	}
	for _, m := range movies {
		s.movies[m.ID] = m
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}
	return s
}

func (s *Store) Ping(ctx context.Context) error { return s.PingErr }

func (s *Store) ListMoviesByRating(ctx context.Context, limit int) ([]domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetMovieByID(ctx context.Context, movieID int64) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[movieID]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return &m, nil
}

func (s *Store) CountMovies(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies), nil
}

func (s *Store) UpsertMovies(ctx context.Context, movies []domain.StoredMovie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range movies {
		id := m.ID
		if existing, ok := s.byIMDb[m.IMDbID]; ok && m.IMDbID != "" {
			id = existing
		}
		if id == 0 {
			s.lastID++
			id = s.lastID
		}
		movie := m.Movie
		movie.ID = id
		s.movies[id] = movie
		if m.IMDbID != "" {
			s.byIMDb[m.IMDbID] = id
		}
	}
	return nil
}

func (s *Store) GetReviewsByMovie(ctx context.Context, movieID int64) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Review(nil), s.reviews[movieID]...), nil
}

func (s *Store) AddReview(ctx context.Context, movieID int64, req domain.ReviewRequest) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[movieID]; !ok {
		return nil, domain.ErrMovieNotFound
	}
	s.reviewID++
	r := domain.Review{ID: s.reviewID, ReviewMsg: req.ReviewMsg, Rating: req.Rating}
	s.reviews[movieID] = append(s.reviews[movieID], r)
	return &r, nil
}

func (s *Store) GenreStats(ctx context.Context) ([]domain.GenreStat, error) {
	return s.Genres, s.StatsErr
}

func (s *Store) YearStats(ctx context.Context) ([]domain.YearStat, error) {
	return s.Years, s.StatsErr
}

func (s *Store) DirectorStats(ctx context.Context) ([]domain.DirectorStat, error) {
	return s.Directors, s.StatsErr
}
