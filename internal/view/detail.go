package view

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

const (
	MovieFetchError   = "Couldn't fetch movie details"
	ReviewsFetchError = "Couldn't fetch reviews"
)

type DetailFetcher interface {
	Movie(ctx context.Context, movieID string) (*domain.Movie, error)
	Reviews(ctx context.Context, movieID string) ([]domain.Review, error)
}

// DetailState is the movie detail page. Movie is non-nil whenever Phase is
// PhaseReady.
type DetailState struct {
	MovieID string
	Phase   Phase
	Err     string
	Movie   *domain.Movie
	Reviews []domain.Review
	Form    ReviewForm
}

func DetailLoading(movieID string) DetailState {
	return DetailState{MovieID: movieID, Phase: PhaseLoading}
}

// Resolve combines the movie and review fetches. When both fail the reviews
// error is reported, matching the order the two results are written in.
func (s DetailState) Resolve(movie Result[*domain.Movie], reviews Result[[]domain.Review]) DetailState {
	next := DetailState{MovieID: s.MovieID, Form: s.Form}

	if movie.Err != nil || movie.Value == nil {
		next.Err = MovieFetchError
	}
	if reviews.Err != nil {
		next.Err = ReviewsFetchError
	}
	if next.Err != "" {
		next.Phase = PhaseFailed
		return next
	}

	next.Phase = PhaseReady
	next.Movie = movie.Value
	next.Reviews = reviews.Value
	if next.Reviews == nil {
		next.Reviews = []domain.Review{}
	}
	return next
}

// LoadDetail runs one activation of the detail page for movieID, fetching the
// movie and its reviews concurrently. Cancelling ctx abandons both fetches.
func LoadDetail(ctx context.Context, api DetailFetcher, movieID string) DetailState {
	var (
		movie   Result[*domain.Movie]
		reviews Result[[]domain.Review]
		g       errgroup.Group
	)

	g.Go(func() error {
		m, err := api.Movie(ctx, movieID)
		movie = ResultOf(m, err)
		return nil
	})
	g.Go(func() error {
		rs, err := api.Reviews(ctx, movieID)
		reviews = ResultOf(rs, err)
		return nil
	})
	g.Wait()

	if movie.Err != nil {
		slog.ErrorContext(ctx, "couldn't fetch movie details", "movie_id", movieID, "error", movie.Err)
	}
	if reviews.Err != nil {
		slog.ErrorContext(ctx, "couldn't fetch reviews", "movie_id", movieID, "error", reviews.Err)
	}

	return DetailLoading(movieID).Resolve(movie, reviews)
}
