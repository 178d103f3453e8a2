package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

func (r *Repository) GenreStats(ctx context.Context) ([]domain.GenreStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.genre, COUNT(*), ROUND(AVG(m.rating)::numeric, 1)::float8
		FROM movies m, UNNEST(m.genre) AS g(genre)
		GROUP BY g.genre
		ORDER BY g.genre`,
	)
	if err != nil {
		return nil, fmt.Errorf("query genre stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.GenreStat{}
	for rows.Next() {
		var s domain.GenreStat
		if err := rows.Scan(&s.Genre, &s.Count, &s.AverageRating); err != nil {
			return nil, fmt.Errorf("scan genre stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre stats: %w", err)
	}
	return stats, nil
}

func (r *Repository) YearStats(ctx context.Context) ([]domain.YearStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT year, COUNT(*), ROUND(AVG(rating)::numeric, 1)::float8
		FROM movies
		GROUP BY year
		ORDER BY year DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query year stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.YearStat{}
	for rows.Next() {
		var s domain.YearStat
		if err := rows.Scan(&s.Year, &s.Count, &s.AverageRating); err != nil {
			return nil, fmt.Errorf("scan year stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year stats: %w", err)
	}
	return stats, nil
}

func (r *Repository) DirectorStats(ctx context.Context) ([]domain.DirectorStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT director, COUNT(*), ROUND(AVG(rating)::numeric, 1)::float8
		FROM movies
		GROUP BY director
		ORDER BY COUNT(*) DESC, director`,
	)
	if err != nil {
		return nil, fmt.Errorf("query director stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.DirectorStat{}
	for rows.Next() {
		var s domain.DirectorStat
		if err := rows.Scan(&s.Director, &s.MovieCount, &s.AverageRating); err != nil {
			return nil, fmt.Errorf("scan director stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate director stats: %w", err)
	}
	return stats, nil
}
