package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
	"github.com/actuallystonmai/movie-reviews/seeds"
)

const (
	topLimit = 100

	defaultScrapeTimeout = 10 * time.Minute
)

type Store interface {
	Ping(ctx context.Context) error
	ListMoviesByRating(ctx context.Context, limit int) ([]domain.Movie, error)
	GetMovieByID(ctx context.Context, movieID int64) (*domain.Movie, error)
	CountMovies(ctx context.Context) (int, error)
	UpsertMovies(ctx context.Context, movies []domain.StoredMovie) error
	GetReviewsByMovie(ctx context.Context, movieID int64) ([]domain.Review, error)
	AddReview(ctx context.Context, movieID int64, req domain.ReviewRequest) (*domain.Review, error)
	GenreStats(ctx context.Context) ([]domain.GenreStat, error)
	YearStats(ctx context.Context) ([]domain.YearStat, error)
	DirectorStats(ctx context.Context) ([]domain.DirectorStat, error)
}

type TopCache interface {
	GetTopMovies(ctx context.Context, limit int) ([]domain.Movie, bool, error)
	SetTopMovies(ctx context.Context, limit int, movies []domain.Movie) error
	ClearTopMovies(ctx context.Context) error
}

// MovieSource produces a fresh catalog, e.g. by scraping.
type MovieSource interface {
	TopMovies(ctx context.Context) ([]domain.StoredMovie, error)
}

type Service struct {
	store         Store
	cache         TopCache
	source        MovieSource
	scrapeTimeout time.Duration
	refresh       singleflight.Group
}

// NewService wires the catalog. scrapeTimeout bounds one refresh; zero picks
// a default.
func NewService(store Store, cache TopCache, source MovieSource, scrapeTimeout time.Duration) *Service {
	if scrapeTimeout <= 0 {
		scrapeTimeout = defaultScrapeTimeout
	}
	return &Service{
		store:         store,
		cache:         cache,
		source:        source,
		scrapeTimeout: scrapeTimeout,
	}
}

// TopMovies returns up to 100 movies by rating, scraping the catalog first
// when the database is empty.
func (s *Service) TopMovies(ctx context.Context) ([]domain.Movie, error) {
	// Check Cache
	cached, found, err := s.cache.GetTopMovies(ctx, topLimit)
	if err != nil {
		log.Printf("[service] cache get error for top movies: %v", err)
	}
	if found {
		return cached, nil
	}

	count, err := s.store.CountMovies(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		log.Println("[service] catalog empty, fetching initial data")
		if _, err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	movies, err := s.store.ListMoviesByRating(ctx, topLimit)
	if err != nil {
		return nil, fmt.Errorf("list top movies: %w", err)
	}

	// Store in cache
	if cacheErr := s.cache.SetTopMovies(ctx, topLimit, movies); cacheErr != nil {
		log.Printf("[service] cache set error for top movies: %v", cacheErr)
	}
	return movies, nil
}

// Refresh re-scrapes the catalog and stores it. Concurrent callers share one
// scrape, which runs detached from any caller's cancellation and is bounded
// by the scrape timeout instead. A caller that gives up gets its context
// error while the scrape carries on. It returns the number of movies stored.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	ch := s.refresh.DoChan("refresh", func() (any, error) {
		scrapeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.scrapeTimeout)
		defer cancel()

		movies, err := s.source.TopMovies(scrapeCtx)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		if len(movies) == 0 {
			return 0, fmt.Errorf("%w: scrape returned no movies", domain.ErrCatalogUnavailable)
		}
		if err := s.store.UpsertMovies(scrapeCtx, movies); err != nil {
			return 0, fmt.Errorf("store scraped movies: %w", err)
		}
		if err := s.cache.ClearTopMovies(scrapeCtx); err != nil {
			log.Printf("[service] cache invalidation error: %v", err)
		}
		log.Printf("[service] catalog refreshed with %d movies", len(movies))
		return len(movies), nil
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	}
}

func (s *Service) DemoMovies() []domain.Movie {
	return seeds.DemoMovies()
}

func (s *Service) Movie(ctx context.Context, movieID int64) (*domain.Movie, error) {
	return s.store.GetMovieByID(ctx, movieID)
}

// Reviews for a movie; an unknown movie simply has none.
func (s *Service) Reviews(ctx context.Context, movieID int64) ([]domain.Review, error) {
	return s.store.GetReviewsByMovie(ctx, movieID)
}

// AddReview stores a review. req.Rating is on the 0-10 scale and stored as is.
func (s *Service) AddReview(ctx context.Context, movieID int64, req domain.ReviewRequest) (*domain.Review, error) {
	if _, err := s.store.GetMovieByID(ctx, movieID); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("check movie %d: %w", movieID, err)
	}
	return s.store.AddReview(ctx, movieID, req)
}

func (s *Service) GenreStats(ctx context.Context) ([]domain.GenreStat, error) {
	return s.store.GenreStats(ctx)
}

func (s *Service) YearStats(ctx context.Context) ([]domain.YearStat, error) {
	return s.store.YearStats(ctx)
}

func (s *Service) DirectorStats(ctx context.Context) ([]domain.DirectorStat, error) {
	return s.store.DirectorStats(ctx)
}

func (s *Service) CheckDB(ctx context.Context) error {
	return s.store.Ping(ctx)
}
