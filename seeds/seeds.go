package seeds

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

var demo = []domain.Movie{
	{
		ID:          1,
		Title:       "The Shawshank Redemption",
		Year:        1994,
		Rating:      9.3,
		Director:    "Frank Darabont",
		Genre:       []string{"Drama", "Crime"},
		Description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BMDFkYTc0MGEtZmNhMC00ZDIzLWFmNTEtODM1ZmRlYWMwMWFmXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_UY67_CR0,0,45,67_AL_.jpg",
	},
	{
		ID:          2,
		Title:       "The Godfather",
		Year:        1972,
		Rating:      9.2,
		Director:    "Francis Ford Coppola",
		Genre:       []string{"Crime", "Drama"},
		Description: "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BM2MyNjYxNmUtYTAwNi00MTYxLWJmNWYtYzZlODY3ZTk3OTFlXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_UY67_CR1,0,45,67_AL_.jpg",
	},
	{
		ID:          3,
		Title:       "The Dark Knight",
		Year:        2008,
		Rating:      9.0,
		Director:    "Christopher Nolan",
		Genre:       []string{"Action", "Crime", "Drama", "Thriller"},
		Description: "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		PosterURL:   "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_UY67_CR0,0,45,67_AL_.jpg",
	},
}

var demoIMDbIDs = []string{"tt0111161", "tt0068646", "tt0468569"}

// DemoMovies returns the static catalog served when scraping is unavailable.
func DemoMovies() []domain.Movie {
	out := make([]domain.Movie, len(demo))
	for i, m := range demo {
		m.Genre = append([]string(nil), m.Genre...)
		out[i] = m
	}
	return out
}

const (
	// Demo rows keep their fixed ids so the static demo list links to them.
	insertDemoMovie = `INSERT INTO movies (id, imdb_id, title, year, rating, director, genre, description, poster_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT DO NOTHING`

	// Explicit ids bypass the sequence; move it past them.
	syncMovieIDs = `SELECT setval(pg_get_serial_sequence('movies', 'id'), (SELECT COALESCE(MAX(id), 1) FROM movies))`
)

func demoRows() [][]any {
	rows := make([][]any, len(demo))
	for i, m := range demo {
		rows[i] = []any{m.ID, demoIMDbIDs[i], m.Title, m.Year, m.Rating, m.Director, m.Genre, m.Description, m.PosterURL}
	}
	return rows
}

// Setup loads the demo catalog into the database under the demo ids. A row
// whose id or IMDb id is already taken is left alone.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("[seed] inserting demo movies")
	for _, row := range demoRows() {
		if _, err := pool.Exec(ctx, insertDemoMovie, row...); err != nil {
			return fmt.Errorf("seed movie %q: %w", row[2], err)
		}
	}
	if _, err := pool.Exec(ctx, syncMovieIDs); err != nil {
		return fmt.Errorf("sync movie id sequence: %w", err)
	}
	log.Println("[seed] seeding complete")
	return nil
}
