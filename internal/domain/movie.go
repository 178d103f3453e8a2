package domain

import "time"

type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	Director    string   `json:"director"`
	Genre       []string `json:"genre"`
	PosterURL   string   `json:"posterUrl"`
	Description string   `json:"description"`
}

// StoredMovie is a Movie as kept by the catalog backend.
type StoredMovie struct {
	Movie
	IMDbID      string
	LastUpdated time.Time
}
