package view

import (
	"context"
	"log/slog"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

type ReviewSubmitter interface {
	SubmitReview(ctx context.Context, movieID string, req domain.ReviewRequest) error
}

// ReviewForm is the review entry form. Rating is on the 0-5 widget scale.
type ReviewForm struct {
	Rating     float64
	Message    string
	Submitting bool
}

// Request converts the form to the wire body, doubling the rating.
func (f ReviewForm) Request() domain.ReviewRequest {
	return domain.ReviewRequest{
		Rating:    domain.ToWireScale(f.Rating),
		ReviewMsg: f.Message,
	}
}

func (f ReviewForm) Begin() ReviewForm {
	f.Submitting = true
	return f
}

// Finish ends a submission. Success clears the form; failure keeps the
// entered values so the user can retry.
func (f ReviewForm) Finish(err error) ReviewForm {
	if err == nil {
		return ReviewForm{}
	}
	f.Submitting = false
	return f
}

// SubmitReview posts form for movieID and returns the form as it should be
// shown afterwards. The error is returned for logging only.
func SubmitReview(ctx context.Context, api ReviewSubmitter, movieID string, form ReviewForm) (ReviewForm, error) {
	form = form.Begin()
	err := api.SubmitReview(ctx, movieID, form.Request())
	if err != nil {
		slog.ErrorContext(ctx, "review submission failed", "movie_id", movieID, "error", err)
	}
	return form.Finish(err), err
}
