package domain

import "errors"

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
