package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingScaleRoundTrip(t *testing.T) {
	for stars := 0.0; stars <= MaxStars; stars += 0.5 {
		wire := ToWireScale(stars)
		assert.Equal(t, stars*2, wire)
		assert.LessOrEqual(t, wire, MaxRating)
		assert.Equal(t, stars, ToDisplayScale(wire))
	}
}

func TestToDisplayScale(t *testing.T) {
	assert.Equal(t, 4.65, ToDisplayScale(9.3))
	assert.Equal(t, 0.0, ToDisplayScale(0))
	assert.Equal(t, MaxStars, ToDisplayScale(MaxRating))
}

func TestHalfStep(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.5, 4.5},
		{4.4, 4.5},
		{4.2, 4},
		{-1, 0},
		{7, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HalfStep(tt.in), "HalfStep(%v)", tt.in)
	}
}
