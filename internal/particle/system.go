package particle

import (
	"math"
	"math/rand"
)

// maxTopUpPerFrame bounds the spawn rate when refilling an ambient
// population, so it self-stabilizes instead of bursting after a stall.
const maxTopUpPerFrame = 8

// System owns the active particles of one animation instance. It is an
// arena addressed by index: entities never escape it and Clear releases
// everything back to the pool on disposal.
//
// A single seeded source drives all randomized spawn parameters, so tests
// can assert statistical properties against a fixed seed.
type System struct {
	rng    *rand.Rand
	active []*Particle
	ranges map[Kind]Ranges

	// Disposal bounds. Polar particles are removed outside
	// [InnerBound, OuterBound] when the bound is non-zero; Cartesian
	// particles are removed beyond BoundW/BoundH (with margin) when set.
	InnerBound float64
	OuterBound float64
	BoundW     float64
	BoundH     float64

	// KeplerBase/KeplerISCO, when set, give polar spawns a Keplerian
	// angular velocity instead of a uniform draw from the speed range.
	KeplerBase float64
	KeplerISCO float64
}

// NewSystem creates an empty particle system with its own seeded source.
func NewSystem(seed int64) *System {
	return &System{
		rng:    rand.New(rand.NewSource(seed)),
		ranges: make(map[Kind]Ranges),
	}
}

// Configure overrides the spawn ranges for a kind. Unconfigured kinds use
// the compiled-in defaults.
func (s *System) Configure(kind Kind, r Ranges) {
	s.ranges[kind] = r
}

// rangesFor returns the active ranges for a kind.
func (s *System) rangesFor(kind Kind) Ranges {
	if r, ok := s.ranges[kind]; ok {
		return r
	}
	return defaultRanges[kind]
}

// Count returns the number of active particles.
func (s *System) Count() int { return len(s.active) }

// CountKind returns the number of active particles of one kind.
func (s *System) CountKind(kind Kind) int {
	n := 0
	for _, p := range s.active {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// ForEach calls fn for every active particle.
func (s *System) ForEach(fn func(*Particle)) {
	for _, p := range s.active {
		fn(p)
	}
}

// Spawn creates count particles of kind, spread around originAngle, with
// speed, size and lifetime drawn from the kind's ranges. Cartesian kinds
// spawn at (0, 0); use SpawnAt to place them on the surface.
func (s *System) Spawn(kind Kind, originAngle float64, count int) {
	r := s.rangesFor(kind)
	for i := 0; i < count; i++ {
		p := newParticle()
		p.Kind = kind
		p.Polar = r.Polar
		p.Size = lerp(r.SizeMin, r.SizeMax, s.rng.Float64())
		p.MaxLife = lerp(r.LifeMin, r.LifeMax, s.rng.Float64())
		p.Life = 1

		angle := originAngle + (s.rng.Float64()-0.5)*2*r.Spread

		if r.Polar {
			p.Angle = angle
			p.Dist = lerp(r.DistMin, r.DistMax, s.rng.Float64())
			if s.KeplerBase > 0 {
				speed := KeplerSpeed(s.KeplerBase, p.Dist, s.KeplerISCO)
				p.AngularVel = speed / math.Max(p.Dist, 1)
			} else {
				p.AngularVel = lerp(r.SpeedMin, r.SpeedMax, s.rng.Float64())
			}
		} else {
			speed := lerp(r.SpeedMin, r.SpeedMax, s.rng.Float64())
			p.VX = math.Cos(angle) * speed
			p.VY = math.Sin(angle) * speed
		}

		s.active = append(s.active, p)
	}
}

// SpawnAt spawns Cartesian particles from a specific surface position.
func (s *System) SpawnAt(kind Kind, x, y, originAngle float64, count int) {
	before := len(s.active)
	s.Spawn(kind, originAngle, count)
	for _, p := range s.active[before:] {
		p.X += x
		p.Y += y
	}
}

// TopUp spawns particles of an ambient kind toward a target population,
// bounded per call so the population converges instead of spiking.
func (s *System) TopUp(kind Kind, target int, originAngle float64) {
	deficit := target - s.CountKind(kind)
	if deficit <= 0 {
		return
	}
	if deficit > maxTopUpPerFrame {
		deficit = maxTopUpPerFrame
	}
	s.Spawn(kind, originAngle, deficit)
}

// Update advances every particle by dt milliseconds, decrements life by
// dt/maxLife, and removes particles whose life reached zero or that
// crossed a disposal bound. Removed particles return to the pool.
func (s *System) Update(dt float64) {
	kept := s.active[:0] // Reuse backing array
	for _, p := range s.active {
		p.Life -= dt / p.MaxLife
		if p.Life <= 0 || s.outOfBounds(p) {
			release(p)
			continue
		}

		if p.Polar {
			p.Angle += p.AngularVel * dt
			p.Dist += p.RadialVel * dt
		} else {
			p.X += p.VX * dt
			p.Y += p.VY * dt
		}

		kept = append(kept, p)
	}
	// Drop released pointers past the kept range
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
}

// outOfBounds reports whether a particle crossed its disposal boundary.
func (s *System) outOfBounds(p *Particle) bool {
	if p.Polar {
		if s.InnerBound > 0 && p.Dist < s.InnerBound {
			return true
		}
		if s.OuterBound > 0 && p.Dist > s.OuterBound {
			return true
		}
		return false
	}
	if s.BoundW > 0 && (p.X < -s.BoundW*0.1 || p.X > s.BoundW*1.1) {
		return true
	}
	if s.BoundH > 0 && (p.Y < -s.BoundH*0.1 || p.Y > s.BoundH*1.1) {
		return true
	}
	return false
}

// Clear retires every particle and releases it to the pool. Called on
// resize re-seeding and on disposal.
func (s *System) Clear() {
	for i, p := range s.active {
		release(p)
		s.active[i] = nil
	}
	s.active = s.active[:0]
}

// Rand exposes the system's seeded source so the owning animation can draw
// auxiliary randomness (burst timing, rock shapes) from the same stream.
func (s *System) Rand() *rand.Rand { return s.rng }

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
