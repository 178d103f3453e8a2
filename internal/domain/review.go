package domain

// Review ratings are on the transmission scale (0-10).
type Review struct {
	ID        int64   `json:"id"`
	ReviewMsg string  `json:"review_msg"`
	Rating    float64 `json:"rating"`
}

type ReviewRequest struct {
	Rating    float64 `json:"rating"`
	ReviewMsg string  `json:"review_msg"`
}
