// Package particle spawns, evolves and retires the transient entities of
// the animations: debris, tail matter, flares, corona and accretion disk
// matter. All rates are per millisecond of wall-clock delta so behavior is
// frame-rate independent.
package particle

import (
	"math"
	"sync"
)

// Kind distinguishes behaviorally distinct particle populations.
type Kind int

const (
	KindDebris Kind = iota // Belt rubble, collision fragments
	KindIon                // Comet ion tail: narrow, fast, short-lived
	KindDust               // Comet dust tail: wide, slow, long-lived
	KindFlare              // Solar flare bursts
	KindCME                // Coronal mass ejections: rare, large, slow
	KindCorona             // Ambient corona shimmer, topped up continuously
	KindDisk               // Accretion disk matter on Keplerian tracks
)

// Particle is a single transient entity. Polar particles track an angle
// and distance around an origin; Cartesian particles track position and
// velocity directly. Life runs from 1 down to 0.
type Particle struct {
	// Cartesian state
	X, Y   float64
	VX, VY float64 // Pixels per ms

	// Polar state
	Angle      float64
	Dist       float64
	AngularVel float64 // Radians per ms
	RadialVel  float64 // Pixels per ms

	Size    float64
	Life    float64 // Remaining fraction, 1 -> 0
	MaxLife float64 // Milliseconds
	Kind    Kind
	Polar   bool
}

// particlePool reuses Particle allocations across spawn/retire cycles.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

func newParticle() *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{Life: 1}
	return p
}

// release returns the particle to the pool. The particle must already be
// removed from the active set.
func release(p *Particle) {
	particlePool.Put(p)
}

// Opacity returns the particle's draw opacity from its remaining life.
// Short-burst kinds fade quadratically so they die with a visible pop;
// ambient kinds ramp in and out so the population doesn't flicker.
func (p *Particle) Opacity() float64 {
	switch p.Kind {
	case KindFlare, KindCME:
		return p.Life * p.Life
	case KindCorona, KindDisk:
		// Ramp in over the first 10% of life, out over the rest
		aged := 1 - p.Life
		if aged < 0.1 {
			return aged / 0.1
		}
		return p.Life
	default:
		return p.Life
	}
}

// KeplerSpeed returns the simplified Keplerian orbital speed at dist for a
// disk with the given innermost stable orbit: base / sqrt(dist/isco).
// Degenerate inputs fall back to the base speed.
func KeplerSpeed(base, dist, isco float64) float64 {
	if dist <= 0 || isco <= 0 {
		return base
	}
	return base / math.Sqrt(dist/isco)
}

// Ranges bounds the randomized spawn parameters of one kind.
type Ranges struct {
	Spread             float64 // Angular spread around the origin angle, radians
	SpeedMin, SpeedMax float64 // Pixels (Cartesian) or radians (polar) per ms
	SizeMin, SizeMax   float64
	LifeMin, LifeMax   float64 // MaxLife draw, milliseconds
	DistMin, DistMax   float64 // Polar spawn distance band
	Polar              bool
}

// defaultRanges holds the designed spawn tuning per kind. Animations
// override the distance bands to match their geometry.
var defaultRanges = map[Kind]Ranges{
	KindDebris: {Spread: math.Pi, SpeedMin: 0.004, SpeedMax: 0.012, SizeMin: 0.5, SizeMax: 1.5, LifeMin: 2500, LifeMax: 6000, Polar: false},
	KindIon:    {Spread: 0.18, SpeedMin: 0.05, SpeedMax: 0.09, SizeMin: 0.4, SizeMax: 0.9, LifeMin: 350, LifeMax: 700, Polar: false},
	KindDust:   {Spread: 0.8, SpeedMin: 0.012, SpeedMax: 0.03, SizeMin: 0.6, SizeMax: 1.4, LifeMin: 900, LifeMax: 2200, Polar: false},
	KindFlare:  {Spread: 0.5, SpeedMin: 0.02, SpeedMax: 0.05, SizeMin: 0.5, SizeMax: 1.2, LifeMin: 400, LifeMax: 900, Polar: false},
	KindCME:    {Spread: 0.35, SpeedMin: 0.008, SpeedMax: 0.02, SizeMin: 1.0, SizeMax: 2.2, LifeMin: 1500, LifeMax: 3000, Polar: false},
	KindCorona: {Spread: math.Pi, SpeedMin: 0.0002, SpeedMax: 0.0012, SizeMin: 0.3, SizeMax: 1.0, LifeMin: 1200, LifeMax: 3500, DistMin: 1.0, DistMax: 1.6, Polar: true},
	KindDisk:   {Spread: math.Pi, SpeedMin: 0, SpeedMax: 0, SizeMin: 0.4, SizeMax: 1.1, LifeMin: 4000, LifeMax: 9000, DistMin: 1.0, DistMax: 3.2, Polar: true},
}

// DefaultRanges returns the designed spawn tuning for a kind.
func DefaultRanges(kind Kind) Ranges {
	return defaultRanges[kind]
}
