package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgForeignKeyViolation is the SQLSTATE for a missing referenced row.
const pgForeignKeyViolation = "23503"

func (r *Repository) GetReviewsByMovie(ctx context.Context, movieID int64) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, review_msg, rating
		FROM reviews
		WHERE movie_id = $1
		ORDER BY id`, movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("query reviews for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ReviewMsg, &rv.Rating); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over reviews: %w", err)
	}
	return reviews, nil
}

// Add review for an existing movie
func (r *Repository) AddReview(ctx context.Context, movieID int64, req domain.ReviewRequest) (*domain.Review, error) {
	rv := &domain.Review{ReviewMsg: req.ReviewMsg, Rating: req.Rating}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (movie_id, rating, review_msg)
		VALUES ($1, $2, $3)
		RETURNING id`,
		movieID, req.Rating, req.ReviewMsg,
	).Scan(&rv.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("insert review for movie %d: %w", movieID, err)
	}
	return rv, nil
}
