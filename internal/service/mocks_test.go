package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) ListMoviesByRating(ctx context.Context, limit int) ([]domain.Movie, error) {
	args := m.Called(ctx, limit)
	movies, _ := args.Get(0).([]domain.Movie)
	return movies, args.Error(1)
}

func (m *mockStore) GetMovieByID(ctx context.Context, movieID int64) (*domain.Movie, error) {
	args := m.Called(ctx, movieID)
	movie, _ := args.Get(0).(*domain.Movie)
	return movie, args.Error(1)
}

func (m *mockStore) CountMovies(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) UpsertMovies(ctx context.Context, movies []domain.StoredMovie) error {
	return m.Called(ctx, movies).Error(0)
}

func (m *mockStore) GetReviewsByMovie(ctx context.Context, movieID int64) ([]domain.Review, error) {
	args := m.Called(ctx, movieID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *mockStore) AddReview(ctx context.Context, movieID int64, req domain.ReviewRequest) (*domain.Review, error) {
	args := m.Called(ctx, movieID, req)
	review, _ := args.Get(0).(*domain.Review)
	return review, args.Error(1)
}

func (m *mockStore) GenreStats(ctx context.Context) ([]domain.GenreStat, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]domain.GenreStat)
	return stats, args.Error(1)
}

func (m *mockStore) YearStats(ctx context.Context) ([]domain.YearStat, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]domain.YearStat)
	return stats, args.Error(1)
}

func (m *mockStore) DirectorStats(ctx context.Context) ([]domain.DirectorStat, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]domain.DirectorStat)
	return stats, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetTopMovies(ctx context.Context, limit int) ([]domain.Movie, bool, error) {
	args := m.Called(ctx, limit)
	movies, _ := args.Get(0).([]domain.Movie)
	return movies, args.Bool(1), args.Error(2)
}

func (m *mockCache) SetTopMovies(ctx context.Context, limit int, movies []domain.Movie) error {
	return m.Called(ctx, limit, movies).Error(0)
}

func (m *mockCache) ClearTopMovies(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockSource struct{ mock.Mock }

func (m *mockSource) TopMovies(ctx context.Context) ([]domain.StoredMovie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]domain.StoredMovie)
	return movies, args.Error(1)
}
