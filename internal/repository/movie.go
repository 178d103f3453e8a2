package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
	"github.com/jackc/pgx/v5"
)

const movieColumns = `id, title, year, rating, director, genre, poster_url, description`

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.Rating, &m.Director, &m.Genre, &m.PosterURL, &m.Description)
	return m, err
}

// Get all movies ordered by rating
func (r *Repository) ListMoviesByRating(ctx context.Context, limit int) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+movieColumns+`
		FROM movies
		ORDER BY rating DESC, id
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query movies by rating: %w", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over movies: %w", err)
	}
	return movies, nil
}

// Get single movie
func (r *Repository) GetMovieByID(ctx context.Context, movieID int64) (*domain.Movie, error) {
	m, err := scanMovie(r.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = $1`, movieID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("query movie id=%d: %w", movieID, err)
	}
	return &m, nil
}

func (r *Repository) CountMovies(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}

// Insert or update movies keyed by IMDb id, in one transaction
func (r *Repository) UpsertMovies(ctx context.Context, movies []domain.StoredMovie) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, m := range movies {
		genre := m.Genre
		if genre == nil {
			genre = []string{}
		}
		batch.Queue(
			`INSERT INTO movies (imdb_id, title, year, rating, director, genre, description, poster_url, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (imdb_id) DO UPDATE SET
				title = EXCLUDED.title,
				year = EXCLUDED.year,
				rating = EXCLUDED.rating,
				director = EXCLUDED.director,
				genre = EXCLUDED.genre,
				description = EXCLUDED.description,
				poster_url = EXCLUDED.poster_url,
				last_updated = EXCLUDED.last_updated`,
			m.IMDbID, m.Title, m.Year, m.Rating, m.Director, genre, m.Description, m.PosterURL, m.LastUpdated,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert %d movies: %w", len(movies), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}
