package apiclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/movie-reviews/internal/apiclient"
	"github.com/actuallystonmai/movie-reviews/internal/apiclient/apitest"
	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

func TestTopMovies(t *testing.T) {
	api := apitest.NewServer()
	defer api.Close()
	api.Top = []domain.Movie{
		apitest.Movie(1, "The Godfather", "Francis Ford Coppola"),
		apitest.Movie(2, "Heat", "Michael Mann"),
	}

	client := apiclient.New(api.URL+"/", time.Second)
	movies, err := client.TopMovies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, api.Top, movies)
	assert.Equal(t, 1, api.Calls("top"))
}

func TestNonSuccessStatusIsStatusError(t *testing.T) {
	api := apitest.NewServer()
	defer api.Close()
	api.TopStatus = http.StatusInternalServerError

	_, err := apiclient.New(api.URL, time.Second).TopMovies(context.Background())

	var statusErr *apiclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, http.MethodGet, statusErr.Method)
}

func TestMovieNotFound(t *testing.T) {
	api := apitest.NewServer()
	defer api.Close()

	_, err := apiclient.New(api.URL, time.Second).Movie(context.Background(), "42")

	var statusErr *apiclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestMovieNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	movie, err := apiclient.New(srv.URL, time.Second).Movie(context.Background(), "7")

	assert.ErrorIs(t, err, apiclient.ErrEmptyMovie)
	assert.Nil(t, movie)
}

func TestMovieAndReviews(t *testing.T) {
	api := apitest.NewServer()
	defer api.Close()
	api.Movies["7"] = apitest.Movie(7, "Se7en", "David Fincher")
	api.Reviews["7"] = []domain.Review{{ID: 1, ReviewMsg: "Dark", Rating: 8}}

	client := apiclient.New(api.URL, time.Second)

	movie, err := client.Movie(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Se7en", movie.Title)

	reviews, err := client.Reviews(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, api.Reviews["7"], reviews)
}

func TestSubmitReviewSendsWireBody(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/movies/7/review", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(buf)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := apiclient.New(srv.URL, time.Second).SubmitReview(context.Background(), "7",
		domain.ReviewRequest{Rating: 9, ReviewMsg: "Great film"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"rating": 9.0, "review_msg": "Great film"}`, body)
}

func TestSubmitReviewFailure(t *testing.T) {
	api := apitest.NewServer()
	defer api.Close()
	api.SubmitStatus = http.StatusBadGateway

	err := apiclient.New(api.URL, time.Second).SubmitReview(context.Background(), "7", domain.ReviewRequest{})

	assert.Error(t, err)
	assert.Len(t, api.Submitted, 1)
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := apiclient.New(url, time.Second).DemoMovies(context.Background())
	assert.Error(t, err)
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := apiclient.New(srv.URL, time.Minute).Reviews(ctx, "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
