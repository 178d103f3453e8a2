package domain

import "math"

const (
	// MaxStars is the top of the 0-5 scale the rating widgets work on.
	MaxStars = 5.0
	// MaxRating is the top of the 0-10 scale used on the wire and in storage.
	MaxRating = 10.0

	scaleFactor = 2.0
)

// ToWireScale converts a widget rating (0-5) to the transmission scale (0-10).
func ToWireScale(stars float64) float64 {
	return stars * scaleFactor
}

// ToDisplayScale converts a transmitted rating (0-10) to widget stars (0-5).
func ToDisplayScale(rating float64) float64 {
	return rating / scaleFactor
}

// HalfStep snaps a widget rating onto the 0-5 half-point grid.
func HalfStep(stars float64) float64 {
	if math.IsNaN(stars) || stars < 0 {
		return 0
	}
	if stars > MaxStars {
		return MaxStars
	}
	return math.Round(stars*2) / 2
}
