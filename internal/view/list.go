package view

import (
	"context"
	"log/slog"
	"strings"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

const ListFetchError = "Failed to fetch movies. Please try again later."

type MovieSource string

const (
	SourceTop  MovieSource = "top-100"
	SourceDemo MovieSource = "demo"
)

type MovieLister interface {
	TopMovies(ctx context.Context) ([]domain.Movie, error)
	DemoMovies(ctx context.Context) ([]domain.Movie, error)
}

// ListState is the movie list page. Movies is only set when Phase is
// PhaseReady and Err only when Phase is PhaseFailed.
type ListState struct {
	Phase      Phase
	Err        string
	Movies     []domain.Movie
	Source     MovieSource
	SearchTerm string
}

func ListLoading(searchTerm string) ListState {
	return ListState{Phase: PhaseLoading, SearchTerm: searchTerm}
}

// Resolve applies the outcome of fetching from src. A failed primary fetch
// leaves the state loading so the caller falls back to the demo endpoint; a
// failed demo fetch is terminal.
func (s ListState) Resolve(src MovieSource, res Result[[]domain.Movie]) ListState {
	if s.Phase != PhaseLoading {
		return s
	}

	if res.Err == nil {
		movies := res.Value
		if movies == nil {
			movies = []domain.Movie{}
		}
		return ListState{Phase: PhaseReady, Movies: movies, Source: src, SearchTerm: s.SearchTerm}
	}

	if src == SourceTop {
		return s
	}
	return ListState{Phase: PhaseFailed, Err: ListFetchError, SearchTerm: s.SearchTerm}
}

// Visible returns the movies matching the current search term.
func (s ListState) Visible() []domain.Movie {
	return Filter(s.Movies, s.SearchTerm)
}

// LoadList runs one activation of the list page: the primary collection, then
// the demo collection if that failed.
func LoadList(ctx context.Context, api MovieLister, searchTerm string) ListState {
	state := ListLoading(searchTerm)

	movies, err := api.TopMovies(ctx)
	state = state.Resolve(SourceTop, ResultOf(movies, err))
	if state.Phase != PhaseLoading {
		return state
	}

	slog.WarnContext(ctx, "top movies unavailable, trying demo endpoint", "error", err)
	movies, err = api.DemoMovies(ctx)
	state = state.Resolve(SourceDemo, ResultOf(movies, err))
	if err != nil {
		slog.ErrorContext(ctx, "demo movies unavailable", "error", err)
	}
	return state
}

// Filter keeps movies whose title or director contains term, ignoring case.
// Order is preserved and movies is not modified.
func Filter(movies []domain.Movie, term string) []domain.Movie {
	needle := strings.ToLower(term)
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), needle) ||
			strings.Contains(strings.ToLower(m.Director), needle) {
			out = append(out, m)
		}
	}
	return out
}
