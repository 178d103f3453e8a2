// Package apiclient talks to the movie REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
)

const (
	topMoviesPath  = "/api/movies/top-100"
	demoMoviesPath = "/api/movies/demo"

	maxErrorBody = 512
)

// ErrEmptyMovie is returned when the movie endpoint answers with a null body.
var ErrEmptyMovie = errors.New("empty movie response")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// TopMovies fetches the primary movie collection.
func (c *Client) TopMovies(ctx context.Context) ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := c.getJSON(ctx, topMoviesPath, &movies); err != nil {
		return nil, fmt.Errorf("fetch top movies: %w", err)
	}
	return movies, nil
}

// DemoMovies fetches the static fallback collection.
func (c *Client) DemoMovies(ctx context.Context) ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := c.getJSON(ctx, demoMoviesPath, &movies); err != nil {
		return nil, fmt.Errorf("fetch demo movies: %w", err)
	}
	return movies, nil
}

// Movie fetches a single movie. movieID is the raw route value.
func (c *Client) Movie(ctx context.Context, movieID string) (*domain.Movie, error) {
	var movie *domain.Movie
	if err := c.getJSON(ctx, moviePath(movieID), &movie); err != nil {
		return nil, fmt.Errorf("fetch movie %q: %w", movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("fetch movie %q: %w", movieID, ErrEmptyMovie)
	}
	return movie, nil
}

func (c *Client) Reviews(ctx context.Context, movieID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.getJSON(ctx, moviePath(movieID)+"/reviews", &reviews); err != nil {
		return nil, fmt.Errorf("fetch reviews for movie %q: %w", movieID, err)
	}
	return reviews, nil
}

// SubmitReview posts a review. The rating in req must already be on the 0-10 scale.
func (c *Client) SubmitReview(ctx context.Context, movieID string, req domain.ReviewRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, moviePath(movieID)+"/review", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit review for movie %q: %w", movieID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

func moviePath(movieID string) string {
	return "/api/movies/" + url.PathEscape(movieID)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do sends the request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}
	return resp, nil
}
