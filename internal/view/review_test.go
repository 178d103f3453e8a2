package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) SubmitReview(ctx context.Context, movieID string, req domain.ReviewRequest) error {
	args := m.Called(ctx, movieID, req)
	return args.Error(0)
}

func TestReviewFormRequestDoublesRating(t *testing.T) {
	for stars := 0.0; stars <= domain.MaxStars; stars += 0.5 {
		req := ReviewForm{Rating: stars, Message: "m"}.Request()
		assert.Equal(t, 2*stars, req.Rating)
		assert.Equal(t, stars, domain.ToDisplayScale(req.Rating))
	}
}

func TestSubmitReviewSuccessResetsForm(t *testing.T) {
	api := &mockSubmitter{}
	api.On("SubmitReview", mock.Anything, "7", domain.ReviewRequest{Rating: 9.0, ReviewMsg: "Great film"}).
		Return(nil).Once()

	form, err := SubmitReview(context.Background(), api, "7", ReviewForm{Rating: 4.5, Message: "Great film"})

	require.NoError(t, err)
	assert.Equal(t, ReviewForm{}, form)
	api.AssertExpectations(t)
}

func TestSubmitReviewFailureKeepsForm(t *testing.T) {
	api := &mockSubmitter{}
	api.On("SubmitReview", mock.Anything, "7", mock.Anything).Return(errors.New("backend down"))

	form, err := SubmitReview(context.Background(), api, "7", ReviewForm{Rating: 2, Message: "meh"})

	assert.Error(t, err)
	assert.Equal(t, ReviewForm{Rating: 2, Message: "meh"}, form)
	assert.False(t, form.Submitting)
}

func TestSubmitReviewAcceptsEmptyForm(t *testing.T) {
	api := &mockSubmitter{}
	api.On("SubmitReview", mock.Anything, "7", domain.ReviewRequest{}).Return(nil)

	_, err := SubmitReview(context.Background(), api, "7", ReviewForm{})

	assert.NoError(t, err)
	api.AssertExpectations(t)
}

func TestReviewFormSubmittingFlag(t *testing.T) {
	f := ReviewForm{Message: "x"}.Begin()
	assert.True(t, f.Submitting)
	assert.False(t, f.Finish(errors.New("x")).Submitting)
	assert.False(t, f.Finish(nil).Submitting)
}
