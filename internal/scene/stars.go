package scene

import (
	"math"
	"math/rand"

	"github.com/tomz197/orrery/internal/draw"
)

// Star is a background point light. Position and base opacity are fixed at
// seeding; only the per-frame twinkle opacity varies.
type Star struct {
	X, Y        float64
	Radius      float64
	BaseOpacity float64
	Phase       float64 // Twinkle phase offset, radians
	Speed       float64 // Twinkle speed, radians per ms
}

// Opacity returns the star's opacity at elapsed time t (milliseconds).
func (s *Star) Opacity(t float64) float64 {
	return s.BaseOpacity * (0.55 + 0.45*math.Sin(s.Phase+t*s.Speed))
}

// SeedStars creates a fresh star population for the given geometry.
// Called at initialization and on every resize; the previous population is
// discarded rather than stretched.
func SeedStars(rng *rand.Rand, g Geometry) []Star {
	count := g.StarCount()
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			X:           rng.Float64() * g.Width,
			Y:           rng.Float64() * g.Height,
			Radius:      0.4 + rng.Float64()*1.0,
			BaseOpacity: 0.15 + rng.Float64()*0.55,
			Phase:       rng.Float64() * 2 * math.Pi,
			Speed:       0.0004 + rng.Float64()*0.0018,
		}
	}
	return stars
}

// DrawStars renders the population. Larger stars get a small cross flare.
func DrawStars(c *draw.Canvas, stars []Star, t float64) {
	for i := range stars {
		s := &stars[i]
		op := s.Opacity(t)
		if op <= 0 {
			continue
		}
		c.SetFloat(s.X, s.Y, op)
		if s.Radius > 1.1 {
			c.SetFloat(s.X-1, s.Y, op*0.4)
			c.SetFloat(s.X+1, s.Y, op*0.4)
			c.SetFloat(s.X, s.Y-1, op*0.4)
			c.SetFloat(s.X, s.Y+1, op*0.4)
		}
	}
}
